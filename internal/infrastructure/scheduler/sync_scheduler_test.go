package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSyncer struct {
	calls atomic.Int64
	err   error
	fired chan struct{}
}

func (f *fakeSyncer) SyncAll(ctx context.Context) error {
	f.calls.Add(1)
	if f.fired != nil {
		select {
		case f.fired <- struct{}{}:
		default:
		}
	}
	return f.err
}

func TestSyncScheduler(t *testing.T) {
	t.Run("runs a pass immediately on start", func(t *testing.T) {
		syncer := &fakeSyncer{fired: make(chan struct{}, 1)}
		sched := NewSyncScheduler(time.Hour, syncer, zap.NewNop())

		require.NoError(t, sched.Start(context.Background()))
		defer sched.Stop(context.Background())

		select {
		case <-syncer.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("expected an immediate sync pass")
		}
	})

	t.Run("fires repeatedly on the interval", func(t *testing.T) {
		syncer := &fakeSyncer{fired: make(chan struct{}, 16)}
		sched := NewSyncScheduler(10*time.Millisecond, syncer, zap.NewNop())

		require.NoError(t, sched.Start(context.Background()))
		defer sched.Stop(context.Background())

		deadline := time.After(2 * time.Second)
		for fired := 0; fired < 3; fired++ {
			select {
			case <-syncer.fired:
			case <-deadline:
				t.Fatal("expected at least three sync passes")
			}
		}
	})

	t.Run("a failing pass does not stop the loop", func(t *testing.T) {
		syncer := &fakeSyncer{err: errors.New("backend unreachable"), fired: make(chan struct{}, 16)}
		sched := NewSyncScheduler(10*time.Millisecond, syncer, zap.NewNop())

		require.NoError(t, sched.Start(context.Background()))
		defer sched.Stop(context.Background())

		deadline := time.After(2 * time.Second)
		for fired := 0; fired < 2; fired++ {
			select {
			case <-syncer.fired:
			case <-deadline:
				t.Fatal("expected the loop to keep firing after a failure")
			}
		}
	})

	t.Run("start is idempotent", func(t *testing.T) {
		syncer := &fakeSyncer{}
		sched := NewSyncScheduler(time.Hour, syncer, zap.NewNop())

		require.NoError(t, sched.Start(context.Background()))
		require.NoError(t, sched.Start(context.Background()))
		require.NoError(t, sched.Stop(context.Background()))
	})

	t.Run("stop waits for the loop and is safe to call twice", func(t *testing.T) {
		syncer := &fakeSyncer{}
		sched := NewSyncScheduler(time.Hour, syncer, zap.NewNop())

		require.NoError(t, sched.Start(context.Background()))
		require.NoError(t, sched.Stop(context.Background()))
		require.NoError(t, sched.Stop(context.Background()))

		settled := syncer.calls.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, settled, syncer.calls.Load())
	})

	t.Run("TriggerNow runs a pass outside the schedule", func(t *testing.T) {
		syncer := &fakeSyncer{}
		sched := NewSyncScheduler(time.Hour, syncer, zap.NewNop())

		require.NoError(t, sched.TriggerNow(context.Background()))
		assert.Equal(t, int64(1), syncer.calls.Load())
	})

	t.Run("TriggerNow propagates the pass error", func(t *testing.T) {
		syncer := &fakeSyncer{err: errors.New("backend unreachable")}
		sched := NewSyncScheduler(time.Hour, syncer, zap.NewNop())

		assert.Error(t, sched.TriggerNow(context.Background()))
	})
}
