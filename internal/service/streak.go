package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// StreakService keeps the daily learning streak of a user up to date.
type StreakService struct {
	progress ProgressStore
	location *time.Location
	clock    func() time.Time
	logger   *zap.Logger
}

// NewStreakService creates a service that counts days in loc.
func NewStreakService(progress ProgressStore, loc *time.Location, logger *zap.Logger) *StreakService {
	if loc == nil {
		loc = time.UTC
	}

	return &StreakService{
		progress: progress,
		location: loc,
		clock:    time.Now,
		logger:   logger,
	}
}

// recordActivity touches the streak after a session started or finished.
// A failure is logged only; the session itself is not affected.
func recordActivity(ctx context.Context, tracker ActivityTracker, logger *zap.Logger, userID string) {
	if tracker == nil {
		return
	}

	if _, err := tracker.Touch(ctx, userID); err != nil {
		logger.Warn("failed to record learning activity",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// Touch records activity for today. It writes only when the streak changed,
// so calling it on every session start is safe.
func (s *StreakService) Touch(ctx context.Context, userID string) (entities.StreakUpdate, error) {
	p, err := s.progress.ReadProgress(ctx, userID)
	if err != nil {
		return entities.StreakUpdate{}, &RepositoryError{Op: "read progress", Err: err}
	}

	now := s.clock().In(s.location)
	upd := entities.UpdateStreak(p.LastActiveDate, p.LearningStreak, p.LongestStreak, now)
	if !upd.Changed {
		return upd, nil
	}

	streak, longest, last := upd.Streak, upd.LongestStreak, upd.LastActiveDate
	err = s.progress.WriteProgress(ctx, userID, entities.ProgressUpdate{
		LearningStreak: &streak,
		LongestStreak:  &longest,
		LastActiveDate: &last,
	})
	if err != nil {
		s.logger.Error("failed to save learning streak",
			zap.String("user_id", userID),
			zap.Int("streak", streak),
			zap.Error(err),
		)
		return upd, &PersistenceError{Op: "write streak", Err: err}
	}

	if streak > 1 {
		s.logger.Debug("learning streak extended",
			zap.String("user_id", userID),
			zap.Int("streak", streak),
		)
	}

	return upd, nil
}
