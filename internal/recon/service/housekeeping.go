package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/store"
)

// staleAttemptAge is how long an unblocked failure count is kept. A user
// who fails once and never returns should not stay one step closer to a
// block forever.
const staleAttemptAge = 24 * time.Hour

// HousekeepingService periodically clears expired OTPs and finished
// lockouts.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewHousekeepingService creates the service. A non-positive interval
// defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down and waits for an in-progress cleanup.
func (s *HousekeepingService) Stop() {
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

// Cleanup runs one pass. Each step is independent; a failure is logged and
// the next step still runs.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := s.Now()

	otps, err := s.Store.Users().DeleteExpiredOTPs(ctx, now)
	if err != nil {
		s.Logger.Error("failed to clear expired otps", "err", err)
	}

	attempts, err := s.Store.LoginAttempts().DeleteExpiredLoginAttempts(ctx, now, now.Add(-staleAttemptAge))
	if err != nil {
		s.Logger.Error("failed to delete expired login attempts", "err", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_otps", otps,
		"expired_login_attempts", attempts,
	)
}
