package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/medisense/backend/internal/infrastructure/observability"
)

// idleSweeper is the part of SessionService the sweeper needs
type idleSweeper interface {
	SweepIdle(ctx context.Context, idle time.Duration) (int, error)
}

// SessionSweeper periodically removes sessions idle for longer than their TTL
type SessionSweeper struct {
	sessions idleSweeper
	idle     time.Duration
	cron     *cron.Cron
}

// NewSessionSweeper schedules SweepIdle on a standard five-field cron expression
func NewSessionSweeper(sessions *SessionService, schedule string, idle time.Duration) (*SessionSweeper, error) {
	return newSessionSweeper(sessions, schedule, idle)
}

func newSessionSweeper(sessions idleSweeper, schedule string, idle time.Duration) (*SessionSweeper, error) {
	s := &SessionSweeper{
		sessions: sessions,
		idle:     idle,
		cron:     cron.New(),
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the schedule in the background
func (s *SessionSweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *SessionSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Sweep runs one pass immediately
func (s *SessionSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := observability.GetLogger()
	removed, err := s.sessions.SweepIdle(ctx, s.idle)
	if err != nil {
		logger.Error().Err(err).Msg("Session sweep failed")
		return
	}
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Swept idle sessions")
	}
}
