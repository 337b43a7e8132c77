package cargo_api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BearBump/CargoBox/internal/integrations/backend"
	"github.com/BearBump/CargoBox/internal/models"
	"github.com/BearBump/CargoBox/internal/services/entities"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf: 4xx от backend пробрасываем как есть, на остальные ошибки транспорта отвечаем 502.
func statusOf(err error) int {
	var (
		ve *models.ValidationError
		nf *entities.NotFoundError
		te *backend.TransportError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.As(err, &te):
		if te.HTTPStatus >= 400 && te.HTTPStatus < 500 {
			return te.HTTPStatus
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= 500 {
		slog.Error("request failed", "status", status, "err", err)
	}
	msg := err.Error()
	var te *backend.TransportError
	if errors.As(err, &te) && te.Message != "" {
		msg = te.Message
	}
	writeJSON(w, status, errorBody{Error: msg})
}
