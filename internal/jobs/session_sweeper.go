// Package jobs runs the console's background maintenance on a gocron scheduler.
package jobs

import (
	"context"
	"time"

	"marketadmin/internal/viewstate"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// ExpiringStore is a session store that can drop expired entries itself
type ExpiringStore interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionLookup reports whether a session is still live
type SessionLookup interface {
	Exists(ctx context.Context, id string) bool
}

// SweepObserver records how many entries a sweep removed
type SweepObserver interface {
	ObserveSwept(sessions, viewStates int)
}

// SessionSweeper periodically drops expired sessions and the view snapshots
// that belonged to them
type SessionSweeper struct {
	scheduler gocron.Scheduler
	sessions  SessionLookup
	tracker   *viewstate.Tracker
	observer  SweepObserver
	logger    *zap.Logger
	interval  time.Duration
}

// NewSessionSweeper creates a sweeper. It does nothing until Start.
func NewSessionSweeper(sessions SessionLookup, tracker *viewstate.Tracker, observer SweepObserver, interval time.Duration, logger *zap.Logger) (*SessionSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &SessionSweeper{
		scheduler: scheduler,
		sessions:  sessions,
		tracker:   tracker,
		observer:  observer,
		logger:    logger,
		interval:  interval,
	}, nil
}

// Start registers the sweep job and starts the scheduler
func (s *SessionSweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.RunOnce(ctx)
		}),
		gocron.WithName("session-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.logger.Info("starting session sweeper", zap.Duration("interval", s.interval))
	s.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep
func (s *SessionSweeper) Stop() error {
	s.logger.Info("stopping session sweeper")
	return s.scheduler.Shutdown()
}

// RunOnce performs one sweep and returns the number of sessions removed
func (s *SessionSweeper) RunOnce(ctx context.Context) int {
	removed := 0
	if store, ok := s.sessions.(ExpiringStore); ok {
		n, err := store.Sweep(ctx)
		if err != nil {
			s.logger.Warn("session sweep failed", zap.Error(err))
		}
		removed = n
	}

	forgotten := s.tracker.Sweep(ctx, s.sessions.Exists)
	s.observer.ObserveSwept(removed, forgotten)

	if removed > 0 || forgotten > 0 {
		s.logger.Debug("session sweep complete",
			zap.Int("sessions_removed", removed),
			zap.Int("view_states_forgotten", forgotten))
	}
	return removed
}
