package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// maxConcurrentWrites bounds the learned-record writes of one quiz.
const maxConcurrentWrites = 8

// ResultRecorder applies the side effects of a finished quiz.
type ResultRecorder struct {
	progress ProgressStore
	learned  LearnedRepository
	logger   *zap.Logger
	clock    func() time.Time
}

// NewResultRecorder creates a recorder writing to the given stores.
func NewResultRecorder(progress ProgressStore, learned LearnedRepository, logger *zap.Logger) *ResultRecorder {
	return &ResultRecorder{
		progress: progress,
		learned:  learned,
		logger:   logger,
		clock:    time.Now,
	}
}

// CompleteSession persists a final quiz result.
//
// The progress update and every learned record are independent writes with no
// ordering between them and no rollback. They are detached from ctx cancellation
// so abandoning the session does not abort writes already issued. Failures are
// logged and the first one is returned as a *PersistenceError.
func (r *ResultRecorder) CompleteSession(
	ctx context.Context,
	userID string,
	tier entities.Tier,
	result *entities.SessionResult,
) error {
	ctx = context.WithoutCancel(ctx)
	now := r.clock()

	var g errgroup.Group
	g.SetLimit(maxConcurrentWrites)

	update := entities.QuizResultUpdate(result)
	g.Go(func() error {
		if err := r.progress.WriteProgress(ctx, userID, update); err != nil {
			r.logger.Error("failed to update progress after quiz",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return &PersistenceError{Op: "write progress", Err: err}
		}
		return nil
	})

	seen := make(map[string]struct{}, len(result.CorrectItems))
	for _, answered := range result.CorrectItems {
		rec := entities.NewLearnedRecord(userID, answered.Item, tier, now)
		if _, dup := seen[rec.Key()]; dup {
			continue
		}
		seen[rec.Key()] = struct{}{}

		g.Go(func() error {
			if err := r.learned.RecordLearned(ctx, rec); err != nil {
				r.logger.Error("failed to record learned word",
					zap.String("user_id", userID),
					zap.String("item_id", rec.ItemID),
					zap.String("tier", string(tier)),
					zap.Error(err),
				)
				return &PersistenceError{Op: "record learned " + rec.ItemID, Err: err}
			}
			return nil
		})
	}

	return g.Wait()
}
