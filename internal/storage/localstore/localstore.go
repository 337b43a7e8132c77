// Package localstore — локальное хранилище коллекций: по одной JSON-строке
// (сериализованный массив записей) на ключ.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Ключи коллекций в локальном хранилище.
const (
	KeyRecipients        = "recipients"
	KeyOrders            = "orders"
	KeyDeliveryAddresses = "deliveryAddresses"
	KeyConsolidations    = "consolidations"
)

type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// DecodeError: сохранённое значение не разбирается как JSON-массив.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode local collection %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReadCollection returns the collection stored under key, or an empty slice when absent.
func ReadCollection[T any](ctx context.Context, b Blobs, key string) ([]T, error) {
	raw, ok, err := b.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "read local collection %q", key)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// WriteCollection rewrites the whole collection under key.
func WriteCollection[T any](ctx context.Context, b Blobs, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encode local collection %q", key)
	}
	if err := b.Set(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "write local collection %q", key)
	}
	return nil
}
