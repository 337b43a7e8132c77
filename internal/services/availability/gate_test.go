package availability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingProber struct {
	calls atomic.Int64
	err   error
	delay time.Duration
}

func (p *countingProber) Probe(ctx context.Context) error {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.err
}

func TestGate_SuccessIsCached(t *testing.T) {
	p := &countingProber{}
	g := New(p)

	require.Equal(t, StateUnknown, g.State())
	require.True(t, g.IsAvailable(context.Background()))
	require.True(t, g.IsAvailable(context.Background()))
	require.Equal(t, int64(1), p.calls.Load())
	require.Equal(t, StateRemote, g.State())
}

func TestGate_FailureIsCachedFor100Calls(t *testing.T) {
	p := &countingProber{err: errors.New("connection refused")}
	g := New(p)

	for i := 0; i < 101; i++ {
		require.False(t, g.IsAvailable(context.Background()))
	}
	require.Equal(t, int64(1), p.calls.Load())
	require.Equal(t, StateLocal, g.State())
}

func TestGate_ResetReprobesExactlyOnce(t *testing.T) {
	p := &countingProber{err: errors.New("down")}
	g := New(p)
	require.False(t, g.IsAvailable(context.Background()))

	g.Reset()
	require.False(t, g.IsAvailable(context.Background()))
	require.False(t, g.IsAvailable(context.Background()))
	require.Equal(t, int64(2), p.calls.Load())
}

func TestGate_DemoteSkipsProbe(t *testing.T) {
	p := &countingProber{}
	g := New(p)
	require.True(t, g.IsAvailable(context.Background()))

	g.Demote()
	require.False(t, g.IsAvailable(context.Background()))
	require.Equal(t, int64(1), p.calls.Load())
	require.Equal(t, StateLocal, g.State())
}

func TestGate_ConcurrentCallersShareProbe(t *testing.T) {
	p := &countingProber{delay: 50 * time.Millisecond}
	g := New(p)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.True(t, g.IsAvailable(context.Background()))
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1), p.calls.Load())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "remote", StateRemote.String())
	require.Equal(t, "local", StateLocal.String())
	require.Equal(t, "unknown", StateUnknown.String())
}
