package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/CargoBox/internal/identity"
	"github.com/BearBump/CargoBox/internal/metrics"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://telegram-logistics-app.onrender.com/api"

	// Backend на бесплатном хостинге может "просыпаться" десятки секунд.
	DefaultProbeTimeout   = 30 * time.Second
	DefaultRequestTimeout = 20 * time.Second

	HealthPath      = "/health"
	HeaderRequestID = "X-Request-Id"
)

type Client struct {
	baseURL      string
	ids          identity.Provider
	httpc        *http.Client
	probec       *http.Client
	probeTimeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

func New(baseURL string, ids identity.Provider, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ids == nil {
		ids = identity.Static(identity.Identity{})
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ids:     ids,
		httpc: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		// Отдельный клиент: таймаут пробы задаётся только её контекстом.
		probec:       &http.Client{},
		probeTimeout: DefaultProbeTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send выполняет JSON-запрос к backend. body и out могут быть nil.
func (c *Client) Send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	for k, vs := range identity.Headers(c.ids.Current()) {
		req.Header[k] = vs
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())

	slog.Debug("remote request", "method", method, "path", path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.RecordRemoteRequest(method, 0)
		return &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordRemoteRequest(method, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Message: err.Error(), HTTPStatus: resp.StatusCode, Err: err}
	}

	if resp.StatusCode/100 != 2 {
		return responseError(resp.StatusCode, payload)
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &TransportError{Message: "decode response: " + err.Error(), HTTPStatus: resp.StatusCode, Err: err}
	}
	return nil
}

// Probe проверяет живость backend (GET /health) со своим таймаутом.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return errors.Wrap(err, "new probe request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.probec.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &TransportError{Message: "health check timed out after " + c.probeTimeout.String(), Err: err}
		}
		return &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Message: err.Error(), HTTPStatus: resp.StatusCode, Err: err}
	}
	if resp.StatusCode/100 != 2 {
		return &TransportError{
			Message:    "health check failed: " + strings.TrimSpace(string(payload)),
			HTTPStatus: resp.StatusCode,
		}
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return &TransportError{Message: "health check returned non-JSON body", HTTPStatus: resp.StatusCode, Err: err}
	}
	return nil
}

func responseError(status int, payload []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	text := strings.TrimSpace(string(payload))
	if err := json.Unmarshal(payload, &body); err != nil {
		// не JSON: берём сырой текст ответа
		body.Error = text
	}
	msg := body.Error
	if msg == "" {
		msg = "HTTP error! status: " + strconv.Itoa(status)
	}
	return &TransportError{Message: msg, HTTPStatus: status}
}

// ItemPath собирает путь к одной записи: /orders/42.
func ItemPath(endpoint string, id string) string {
	return endpoint + "/" + url.PathEscape(id)
}
