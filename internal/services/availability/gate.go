package availability

import (
	"context"
	"log/slog"
	"sync"

	"github.com/BearBump/CargoBox/internal/metrics"
	"golang.org/x/sync/singleflight"
)

type Prober interface {
	Probe(ctx context.Context) error
}

type State int

const (
	StateUnknown State = iota
	StateRemote
	StateLocal
)

func (s State) String() string {
	switch s {
	case StateRemote:
		return "remote"
	case StateLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Gate кэширует решение "доступен ли backend" до явного Reset.
// Один экземпляр разделяют все хранилища сущностей процесса.
type Gate struct {
	prober Prober

	mu      sync.Mutex
	state   State
	epoch   uint64
	flights singleflight.Group
}

func New(prober Prober) *Gate {
	return &Gate{prober: prober}
}

// IsAvailable probes once and then answers from the cached state.
// Concurrent callers of an unresolved gate share one probe.
func (g *Gate) IsAvailable(ctx context.Context) bool {
	g.mu.Lock()
	st, epoch := g.state, g.epoch
	g.mu.Unlock()
	if st != StateUnknown {
		return st == StateRemote
	}

	v, _, _ := g.flights.Do("probe", func() (any, error) {
		g.mu.Lock()
		if g.state != StateUnknown {
			ok := g.state == StateRemote
			g.mu.Unlock()
			return ok, nil
		}
		g.mu.Unlock()

		// Проба не должна обрываться, если отменили только первого из ожидающих.
		err := g.prober.Probe(context.WithoutCancel(ctx))
		ok := err == nil
		metrics.RecordProbe(ok)
		if ok {
			slog.Info("remote API is available, using backend")
		} else {
			slog.Warn("remote API is unavailable, using local storage", "error", err.Error())
		}

		g.mu.Lock()
		defer g.mu.Unlock()
		// Reset/Demote во время пробы важнее её результата.
		if g.epoch == epoch && g.state == StateUnknown {
			if ok {
				g.state = StateRemote
			} else {
				g.state = StateLocal
			}
		}
		return ok, nil
	})
	return v.(bool)
}

// Reset forgets the cached decision so the next IsAvailable probes again.
func (g *Gate) Reset() {
	g.mu.Lock()
	g.state = StateUnknown
	g.epoch++
	g.mu.Unlock()
	g.flights.Forget("probe")
}

// Demote switches to local mode without probing.
func (g *Gate) Demote() {
	g.mu.Lock()
	if g.state != StateLocal {
		slog.Warn("remote API demoted, switching to local storage")
	}
	g.state = StateLocal
	g.epoch++
	g.mu.Unlock()
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
