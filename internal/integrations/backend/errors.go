package backend

import (
	"errors"
	"fmt"
)

// TransportError: единая форма ошибки обращения к backend: сеть, таймаут или не-2xx.
type TransportError struct {
	Message    string
	HTTPStatus int // 0, если ответа не было
	Err        error
}

func (e *TransportError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("remote http %d: %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("remote unavailable: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err carries a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
