package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   atomic.Int32
	active  atomic.Int32
	maxSeen atomic.Int32
	hold    time.Duration
	err     error

	mu        sync.Mutex
	cancelled bool
}

func (f *fakeRunner) Run(ctx context.Context) (*RunSummary, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	if f.hold > 0 {
		select {
		case <-ctx.Done():
			f.mu.Lock()
			f.cancelled = true
			f.mu.Unlock()
		case <-time.After(f.hold):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return NewRunSummary("run", time.Now()), nil
}

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Hour, true, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runner.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_NoImmediateRunWhenDisabled(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Hour, false, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(0), runner.calls.Load())
}

func TestScheduler_TicksOnInterval(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Second, false, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runner.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestScheduler_NeverOverlaps(t *testing.T) {
	runner := &fakeRunner{hold: 1500 * time.Millisecond}
	s := NewScheduler(runner, time.Second, true, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(2500 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), runner.maxSeen.Load())
}

func TestScheduler_DeliversFatalErrors(t *testing.T) {
	boom := errors.New("history unreadable")
	runner := &fakeRunner{err: boom}
	s := NewScheduler(runner, time.Hour, true, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	select {
	case err := <-s.Errors():
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("expected run error")
	}
}

func TestScheduler_LockConflictIsNotAnError(t *testing.T) {
	runner := &fakeRunner{err: ErrRunInProgress}
	s := NewScheduler(runner, time.Hour, true, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.Stop()

	select {
	case err := <-s.Errors():
		t.Fatalf("unexpected error: %v", err)
	default:
	}
}

func TestScheduler_StopCancelsAndWaits(t *testing.T) {
	runner := &fakeRunner{hold: time.Minute}
	s := NewScheduler(runner, time.Hour, true, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return runner.active.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.Stop()

	assert.Equal(t, int32(0), runner.active.Load())
	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.True(t, runner.cancelled)
}

func TestScheduler_StartTwice(t *testing.T) {
	s := NewScheduler(&fakeRunner{}, time.Hour, false, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Error(t, s.Start(context.Background()))
}
