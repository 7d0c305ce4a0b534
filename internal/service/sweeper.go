package service

import (
	"context"
	"time"

	"microwave/internal/repository"

	"go.uber.org/zap"
)

const defaultIdleTimeout = 30 * time.Minute

// SessionSweeper drops sessions that have been idle longer than the timeout.
type SessionSweeper struct {
	store       repository.SessionStore
	idleTimeout time.Duration
	log         *zap.SugaredLogger
	now         func() time.Time
}

func NewSessionSweeper(store repository.SessionStore, idleTimeout time.Duration, log *zap.SugaredLogger) *SessionSweeper {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	return &SessionSweeper{store: store, idleTimeout: idleTimeout, log: log, now: time.Now}
}

// Run sweeps at the given interval until ctx is canceled.
func (s *SessionSweeper) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce removes every session idle since before now minus the timeout
// and returns how many were removed.
func (s *SessionSweeper) SweepOnce(ctx context.Context) int {
	n, err := s.store.Sweep(ctx, s.now().Add(-s.idleTimeout))
	if err != nil {
		s.log.Warnw("session_sweep_failed", "err", err)
		return 0
	}
	if n > 0 {
		s.log.Infow("session_sweep", "removed", n)
	}
	return n
}
