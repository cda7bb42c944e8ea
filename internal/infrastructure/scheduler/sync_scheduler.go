package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Syncer runs one full synchronization pass
type Syncer interface {
	SyncAll(ctx context.Context) error
}

// SyncScheduler triggers periodic synchronization passes. Overlap is not
// a concern here: a pass that fires while the previous one is still in
// flight is absorbed by the syncer's own in-flight guard.
type SyncScheduler struct {
	interval time.Duration
	syncer   Syncer
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(interval time.Duration, syncer Syncer, logger *zap.Logger) *SyncScheduler {
	return &SyncScheduler{
		interval: interval,
		syncer:   syncer,
		logger:   logger,
	}
}

// Start starts the periodic trigger. The first pass runs immediately.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("interval", s.interval),
	)

	return nil
}

// Stop stops the trigger and waits for the loop to exit
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop fires sync passes on the configured interval
func (s *SyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single pass and logs the outcome. A failed pass is
// not retried here; the next tick picks up whatever is still pending.
func (s *SyncScheduler) runOnce(ctx context.Context) {
	if err := s.syncer.SyncAll(ctx); err != nil {
		s.logger.Error("Scheduled sync pass failed", zap.Error(err))
		return
	}
	s.logger.Debug("Scheduled sync pass completed")
}

// TriggerNow fires an immediate pass outside the schedule
func (s *SyncScheduler) TriggerNow(ctx context.Context) error {
	s.logger.Info("Manual sync triggered")
	return s.syncer.SyncAll(ctx)
}
