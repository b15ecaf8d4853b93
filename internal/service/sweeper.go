package service

import (
	"context"
	"fmt"
	"time"

	"github.com/atboard/board-service/internal/security"
	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

type deactivator interface {
	DeactivateStaleTopics(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper deactivates expired time-limited topics on a fixed cron schedule
// evaluated in a pinned timezone. Each tick is one bulk store operation;
// a failed tick logs and waits for the next one.
type Sweeper struct {
	store  deactivator
	window time.Duration
	cron   *cron.Cron
}

// NewSweeper builds a sweeper from a cron spec (e.g. "0 * * * *" for the
// top of every hour), a timezone, and the inactivity window after which a
// time-limited topic is deactivated.
func NewSweeper(store deactivator, spec string, loc *time.Location, window time.Duration) (*Sweeper, error) {
	s := &Sweeper{
		store:  store,
		window: window,
		cron:   cron.New(cron.WithLocation(loc)),
	}
	if _, err := s.cron.AddFunc(spec, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the schedule. Ticks run on the cron's goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
	log.Info("Staleness sweeper started", "window", s.window)
}

// Stop halts the schedule; the returned context is done once any in-flight
// tick has finished.
func (s *Sweeper) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce performs a single sweep tick. Idempotent: re-running after a
// sweep that deactivated topics changes nothing.
func (s *Sweeper) RunOnce(ctx context.Context) {
	cutoff := time.Now().Add(-s.window)
	n, err := s.store.DeactivateStaleTopics(ctx, cutoff)
	if err != nil {
		log.Error("Staleness sweep failed", "err", err)
		return
	}
	if n > 0 {
		log.Info("Staleness sweep", "deactivated", n, "cutoff", cutoff)
		if security.SweepDeactivatedTotal != nil {
			security.SweepDeactivatedTotal.Add(float64(n))
		}
	}
}
