package entities

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/BearBump/CargoBox/internal/broker/messages"
	"github.com/BearBump/CargoBox/internal/identity"
	"github.com/BearBump/CargoBox/internal/integrations/backend"
	"github.com/BearBump/CargoBox/internal/metrics"
	"github.com/BearBump/CargoBox/internal/models"
	"github.com/BearBump/CargoBox/internal/storage/localstore"
	"github.com/pkg/errors"
)

type Remote interface {
	Send(ctx context.Context, method, path string, body, out any) error
}

type Availability interface {
	IsAvailable(ctx context.Context) bool
	Reset()
	Demote()
}

type Publisher interface {
	PublishEntityChanged(ctx context.Context, msg messages.EntityChanged) error
}

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

type DeleteResult struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deleted,omitempty"`
}

type Option func(*options)

type options struct {
	pub Publisher
	ids identity.Provider
	now func() time.Time
}

// WithPublisher включает публикацию событий об изменениях.
func WithPublisher(p Publisher) Option {
	return func(o *options) { o.pub = p }
}

func WithIdentity(ids identity.Provider) Option {
	return func(o *options) { o.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Store реализует CRUD одного вида сущностей поверх remote API с откатом в локальное хранилище.
type Store[T, P any] struct {
	kind   Kind[T]
	remote Remote
	gate   Availability
	blobs  localstore.Blobs
	opts   options

	// сериализует read-modify-write локальной коллекции
	mu sync.Mutex
}

func NewStore[T, P any](kind Kind[T], remote Remote, gate Availability, blobs localstore.Blobs, opts ...Option) *Store[T, P] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, P]{kind: kind, remote: remote, gate: gate, blobs: blobs, opts: o}
}

func (s *Store[T, P]) Kind() Kind[T] {
	return s.kind
}

func (s *Store[T, P]) Mode(ctx context.Context) Mode {
	if s.gate.IsAvailable(ctx) {
		return ModeRemote
	}
	return ModeLocal
}

func (s *Store[T, P]) GetAll(ctx context.Context) ([]T, error) {
	if s.gate.IsAvailable(ctx) {
		out, err := s.remoteList(ctx)
		if err == nil {
			return out, nil
		}
		if s.kind.Policy.List.TreatSlowAsEmpty {
			reason := "error"
			if errors.Is(err, context.DeadlineExceeded) {
				reason = "timeout"
			}
			slog.Warn("remote list failed, returning empty", "kind", s.kind.Name, "reason", reason, "err", err)
			metrics.RecordEmptyList(s.kind.Name, reason)
			return []T{}, nil
		}
		s.demote(ctx, "getAll", err)
	}
	return localstore.ReadCollection[T](ctx, s.blobs, s.kind.StorageKey)
}

func (s *Store[T, P]) remoteList(ctx context.Context) ([]T, error) {
	if pol := s.kind.Policy.List; pol.TreatSlowAsEmpty && pol.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pol.Timeout)
		defer cancel()
	}
	var out []T
	if err := s.remote.Send(ctx, http.MethodGet, s.kind.Endpoint, nil, &out); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), err.Error())
		}
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// GetByID: ошибки remote возвращаются как есть, без отката в локальное хранилище.
func (s *Store[T, P]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	if s.gate.IsAvailable(ctx) {
		var out T
		if err := s.remote.Send(ctx, http.MethodGet, backend.ItemPath(s.kind.Endpoint, id), nil, &out); err != nil {
			return zero, err
		}
		return out, nil
	}

	items, err := localstore.ReadCollection[T](ctx, s.blobs, s.kind.StorageKey)
	if err != nil {
		return zero, err
	}
	if i := s.index(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, &NotFoundError{Kind: s.kind.Name, ID: id}
}

func (s *Store[T, P]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if s.kind.Validate != nil {
		if err := s.kind.Validate(item); err != nil {
			return zero, err
		}
	}
	now := s.opts.now().UTC()
	if s.kind.Prepare != nil {
		s.kind.Prepare(&item, now)
	}
	if s.kind.Policy.ReprobeBeforeCreate {
		s.gate.Reset()
	}

	if s.gate.IsAvailable(ctx) {
		body := item
		s.kind.Stamp(&body, "", time.Time{})
		var out T
		if err := s.remote.Send(ctx, http.MethodPost, s.kind.Endpoint, body, &out); err != nil {
			slog.Error("remote create failed", "kind", s.kind.Name, "err", err)
			return zero, err
		}
		s.publish(ctx, messages.OpCreated, ModeRemote, string(s.kind.ID(out)))
		return out, nil
	}

	slog.Warn("remote unavailable, creating locally", "kind", s.kind.Name)
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := localstore.ReadCollection[T](ctx, s.blobs, s.kind.StorageKey)
	if err != nil {
		return zero, err
	}
	id := s.nextID(items, now)
	s.kind.Stamp(&item, id, now)
	items = append(items, item)
	if err := localstore.WriteCollection(ctx, s.blobs, s.kind.StorageKey, items); err != nil {
		return zero, err
	}
	s.publish(ctx, messages.OpCreated, ModeLocal, string(id))
	return item, nil
}

func (s *Store[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	if s.gate.IsAvailable(ctx) {
		var out T
		err := s.remote.Send(ctx, http.MethodPut, backend.ItemPath(s.kind.Endpoint, id), patch, &out)
		if err == nil {
			s.publish(ctx, messages.OpUpdated, ModeRemote, id)
			return out, nil
		}
		s.demote(ctx, "update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := localstore.ReadCollection[T](ctx, s.blobs, s.kind.StorageKey)
	if err != nil {
		return zero, err
	}
	i := s.index(items, id)
	if i < 0 {
		return zero, &NotFoundError{Kind: s.kind.Name, ID: id}
	}
	merged, err := applyPatch(items[i], patch)
	if err != nil {
		return zero, err
	}
	items[i] = merged
	if err := localstore.WriteCollection(ctx, s.blobs, s.kind.StorageKey, items); err != nil {
		return zero, err
	}
	s.publish(ctx, messages.OpUpdated, ModeLocal, id)
	return merged, nil
}

func (s *Store[T, P]) Delete(ctx context.Context, id string) (DeleteResult, error) {
	if s.gate.IsAvailable(ctx) {
		var resp struct {
			Success *bool `json:"success"`
		}
		err := s.remote.Send(ctx, http.MethodDelete, backend.ItemPath(s.kind.Endpoint, id), nil, &resp)
		if err == nil {
			s.publish(ctx, messages.OpDeleted, ModeRemote, id)
			return DeleteResult{Success: resp.Success == nil || *resp.Success}, nil
		}
		s.demote(ctx, "delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := localstore.ReadCollection[T](ctx, s.blobs, s.kind.StorageKey)
	if err != nil {
		return DeleteResult{}, err
	}
	items = slices.DeleteFunc(items, func(it T) bool { return string(s.kind.ID(it)) == id })
	if err := localstore.WriteCollection(ctx, s.blobs, s.kind.StorageKey, items); err != nil {
		return DeleteResult{}, err
	}
	s.publish(ctx, messages.OpDeleted, ModeLocal, id)
	return DeleteResult{Success: true}, nil
}

// DeleteMany работает только для видов с BulkDelete. Локально сообщает len(ids),
// даже если часть id уже отсутствовала.
func (s *Store[T, P]) DeleteMany(ctx context.Context, ids []string) (DeleteResult, error) {
	if !s.kind.Policy.BulkDelete {
		return DeleteResult{}, ErrUnsupported
	}
	if s.gate.IsAvailable(ctx) {
		var resp struct {
			Success *bool `json:"success"`
			Deleted *int  `json:"deleted"`
		}
		body := map[string][]string{"ids": ids}
		err := s.remote.Send(ctx, http.MethodDelete, s.kind.Endpoint, body, &resp)
		if err == nil {
			res := DeleteResult{Success: resp.Success == nil || *resp.Success, DeletedCount: len(ids)}
			if resp.Deleted != nil {
				res.DeletedCount = *resp.Deleted
			}
			s.publish(ctx, messages.OpDeleted, ModeRemote, ids...)
			return res, nil
		}
		s.demote(ctx, "deleteMany", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := localstore.ReadCollection[T](ctx, s.blobs, s.kind.StorageKey)
	if err != nil {
		return DeleteResult{}, err
	}
	items = slices.DeleteFunc(items, func(it T) bool { return slices.Contains(ids, string(s.kind.ID(it))) })
	if err := localstore.WriteCollection(ctx, s.blobs, s.kind.StorageKey, items); err != nil {
		return DeleteResult{}, err
	}
	s.publish(ctx, messages.OpDeleted, ModeLocal, ids...)
	return DeleteResult{Success: true, DeletedCount: len(ids)}, nil
}

func (s *Store[T, P]) demote(ctx context.Context, op string, err error) {
	slog.Warn("remote call failed, switching to local storage", "kind", s.kind.Name, "op", op, "err", err)
	metrics.RecordFallback(s.kind.Name, op)
	s.gate.Demote()
}

func (s *Store[T, P]) index(items []T, id string) int {
	return slices.IndexFunc(items, func(it T) bool { return string(s.kind.ID(it)) == id })
}

// nextID: миллисекунды времени создания; при совпадении сдвигаем на 1 мс.
func (s *Store[T, P]) nextID(items []T, now time.Time) models.ID {
	for {
		id := models.NewLocalID(now)
		if s.index(items, string(id)) < 0 {
			return id
		}
		now = now.Add(time.Millisecond)
	}
}

func (s *Store[T, P]) publish(ctx context.Context, op string, mode Mode, ids ...string) {
	if s.opts.pub == nil {
		return
	}
	msg := messages.EntityChanged{
		Kind: s.kind.Name,
		Op:   op,
		IDs:  ids,
		Mode: string(mode),
		At:   s.opts.now().UTC(),
	}
	if s.opts.ids != nil {
		msg.Identity = s.opts.ids.Current().ID
	}
	if err := s.opts.pub.PublishEntityChanged(ctx, msg); err != nil {
		slog.Error("publish entity changed", "kind", s.kind.Name, "op", op, "err", err)
	}
}

// applyPatch накладывает заданные поля патча поверх записи. Патч не содержит
// id и даты создания, поэтому они сохраняются.
func applyPatch[T, P any](item T, patch P) (T, error) {
	var zero T
	base, err := json.Marshal(item)
	if err != nil {
		return zero, errors.Wrap(err, "marshal record")
	}
	over, err := json.Marshal(patch)
	if err != nil {
		return zero, errors.Wrap(err, "marshal patch")
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, errors.Wrap(err, "decode record")
	}
	var patchFields map[string]json.RawMessage
	if err := json.Unmarshal(over, &patchFields); err != nil {
		return zero, errors.Wrap(err, "decode patch")
	}
	for k, v := range patchFields {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, errors.Wrap(err, "encode merged record")
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, errors.Wrap(err, "decode merged record")
	}
	return out, nil
}
