package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskerra/taskerra/internal/api/store"
	"github.com/taskerra/taskerra/pkg/resettoken"
)

// HousekeepingService periodically deletes recovery tokens that are past the
// redemption window. Expiry is still enforced at redemption time; this only
// keeps the table from growing without bound. Sessions are deliberately left
// alone.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Non-blocking; call Stop to shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker, blocking until any
// in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-resettoken.TTL)

	n, err := s.Store.RecoveryTokens().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete stale recovery tokens", "error", err)
		return
	}
	if n > 0 {
		s.Logger.Info("deleted stale recovery tokens", "count", n)
	}
}
