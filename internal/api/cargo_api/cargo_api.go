package cargo_api

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/BearBump/CargoBox/internal/models"
	"github.com/BearBump/CargoBox/internal/services/calculator"
	"github.com/BearBump/CargoBox/internal/services/entities"
	"github.com/go-chi/chi/v5"
)

//go:embed swagger.json
var SwaggerJSON []byte

type ModeSwitch interface {
	Reset()
}

type API struct {
	stores *entities.Stores
	gate   ModeSwitch
	now    func() time.Time
}

func New(stores *entities.Stores, gate ModeSwitch) *API {
	return &API{stores: stores, gate: gate, now: time.Now}
}

// Routes собирает обработчики /api/v1.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	mountKind[models.Recipient, models.RecipientPatch](r, "/recipients", a.stores.Recipients, nil)
	mountKind[models.Order, models.OrderPatch](r, "/orders", a.stores.Orders, func(o *models.Order) { o.ApplyFormDefaults(a.now()) },
		func(r chi.Router) { r.Delete("/", a.deleteOrders) })
	mountKind[models.DeliveryAddress, models.DeliveryAddressPatch](r, "/delivery-addresses", a.stores.DeliveryAddresses, nil)
	mountKind[models.Consolidation, models.ConsolidationPatch](r, "/consolidations", a.stores.Consolidations, nil)

	r.Get("/mode", a.mode)
	r.Post("/mode/reset", a.resetMode)

	r.Post("/calculator", a.calculate)
	r.Get("/calculator/cities", a.cities)
	r.Get("/delivery-companies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.DeliveryCompanies())
	})
	return r
}

type store[T, P any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) (entities.DeleteResult, error)
}

func mountKind[T, P any](r chi.Router, path string, st store[T, P], prepare func(*T), extra ...func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		for _, fn := range extra {
			fn(r)
		}
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			items, err := st.GetAll(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, items)
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var item T
			if !decodeBody(w, r, &item) {
				return
			}
			if prepare != nil {
				prepare(&item)
			}
			out, err := st.Create(r.Context(), item)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, out)
		})
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			out, err := st.GetByID(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var patch P
			if !decodeBody(w, r, &patch) {
				return
			}
			out, err := st.Update(r.Context(), chi.URLParam(r, "id"), patch)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			res, err := st.Delete(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})
	})
}

func (a *API) deleteOrders(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if len(body.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ids is required"})
		return
	}
	res, err := a.stores.Orders.DeleteMany(r.Context(), body.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type modeResponse struct {
	Mode entities.Mode `json:"mode"`
}

func (a *API) mode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modeResponse{Mode: a.stores.Orders.Mode(r.Context())})
}

func (a *API) resetMode(w http.ResponseWriter, r *http.Request) {
	a.gate.Reset()
	writeJSON(w, http.StatusOK, modeResponse{Mode: a.stores.Orders.Mode(r.Context())})
}

func (a *API) calculate(w http.ResponseWriter, r *http.Request) {
	var in calculator.Input
	if !decodeBody(w, r, &in) {
		return
	}
	est, err := calculator.Calculate(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (a *API) cities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, calculator.SuggestCities(r.URL.Query().Get("q")))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}
