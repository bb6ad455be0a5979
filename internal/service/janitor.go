package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSchedule runs the idle-session sweep every ten minutes.
const DefaultSweepSchedule = "*/10 * * * *"

// Janitor periodically evicts idle sessions.
type Janitor struct {
	sessions *SessionManager
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
}

// NewJanitor creates a janitor evicting sessions idle for longer than ttl.
func NewJanitor(sessions *SessionManager, ttl time.Duration, schedule string, logger *zap.Logger) *Janitor {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &Janitor{
		sessions: sessions,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the sweep on schedule until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, j.sweep)
	if err != nil {
		j.logger.Error("failed to add cron job", zap.String("schedule", j.schedule), zap.Error(err))
		return err
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("idle_ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}

func (j *Janitor) sweep() {
	n := j.sessions.Sweep(j.ttl)
	if n > 0 {
		j.logger.Info("idle sessions evicted", zap.Int("count", n))
	}
}
