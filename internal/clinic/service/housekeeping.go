package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/store"
)

// HousekeepingService periodically prunes the evidence cache so it neither
// serves stale rows nor grows past its bound.
type HousekeepingService struct {
	Store      store.Store
	Logger     *slog.Logger
	Interval   time.Duration
	MaxEntries int

	stopCh chan struct{}
	doneCh chan struct{}

	started  atomic.Bool
	stopOnce sync.Once
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour. maxEntries <= 0 disables trimming.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration, maxEntries int) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:      store,
		Logger:     logger,
		Interval:   interval,
		MaxEntries: maxEntries,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished. It is a no-op if
// the worker was never started.
func (s *HousekeepingService) Stop() {
	if !s.started.Load() {
		return
	}
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass. Each step runs even if the previous one failed.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	s.Logger.Debug("starting housekeeping cleanup")

	var expired, trimmed int64

	n, err := s.Store.Evidence().DeleteExpiredEvidence(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to delete expired evidence", "error", err)
	} else {
		expired = n
	}

	if s.MaxEntries > 0 {
		n, err := s.Store.Evidence().TrimEvidence(ctx, s.MaxEntries)
		if err != nil {
			s.Logger.Error("failed to trim evidence cache", "error", err)
		} else {
			trimmed = n
		}
	}

	s.Logger.Info("housekeeping cleanup completed", "expired_evidence", expired, "trimmed_evidence", trimmed)
}
