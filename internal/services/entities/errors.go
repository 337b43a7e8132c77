package entities

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnsupported: операция не определена для вида сущности (deleteMany не для заказов).
var ErrUnsupported = errors.New("operation not supported for this entity kind")

// NotFoundError: запись с таким id отсутствует в локальном хранилище.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
