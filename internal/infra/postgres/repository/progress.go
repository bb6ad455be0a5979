package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/infra/postgres"
)

// ProgressRepository provides access to user progress and the review position.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database pool.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ReadProgress returns the progress of a user, creating the default record
// the first time.
func (r *ProgressRepository) ReadProgress(ctx context.Context, userID string) (*entities.UserProgress, error) {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO user_progress (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("init progress: %w", err)
	}

	query := `
		SELECT user_id, score, words_learned, learning_streak, longest_streak,
		       quiz_accuracy, last_active_date
		FROM user_progress
		WHERE user_id = $1
	`

	var p entities.UserProgress
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Score,
		&p.WordsLearned,
		&p.LearningStreak,
		&p.LongestStreak,
		&p.QuizAccuracy,
		&p.LastActiveDate,
	)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &p, nil
}

// WriteProgress merges update into the stored record. Counters are
// incremented in SQL so concurrent writers never lose an increment.
func (r *ProgressRepository) WriteProgress(ctx context.Context, userID string, update entities.ProgressUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	query := `
		INSERT INTO user_progress (
			user_id, score, words_learned, learning_streak, longest_streak, quiz_accuracy, last_active_date
		) VALUES (
			$1, $2, $3, COALESCE($4::int, 0), COALESCE($5::int, 0), COALESCE($6::float8, 0), $7::timestamptz
		)
		ON CONFLICT (user_id) DO UPDATE SET
			score = user_progress.score + EXCLUDED.score,
			words_learned = user_progress.words_learned + EXCLUDED.words_learned,
			learning_streak = COALESCE($4::int, user_progress.learning_streak),
			longest_streak = COALESCE($5::int, user_progress.longest_streak),
			quiz_accuracy = COALESCE($6::float8, user_progress.quiz_accuracy),
			last_active_date = COALESCE($7::timestamptz, user_progress.last_active_date)
	`

	_, err := r.db.Exec(ctx, query,
		userID,
		update.ScoreDelta,
		update.WordsLearnedDelta,
		update.LearningStreak,
		update.LongestStreak,
		update.QuizAccuracy,
		update.LastActiveDate,
	)
	if err != nil {
		return fmt.Errorf("write progress: %w", err)
	}

	return nil
}

// ReadPosition returns the saved review position or entities.ErrPositionNotFound.
func (r *ProgressRepository) ReadPosition(ctx context.Context, userID string) (*entities.Position, error) {
	query := `SELECT user_id, tier, item_index FROM review_positions WHERE user_id = $1`

	var pos entities.Position
	err := r.db.QueryRow(ctx, query, userID).Scan(&pos.UserID, &pos.Tier, &pos.Index)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrPositionNotFound
		}
		return nil, fmt.Errorf("get position: %w", err)
	}

	return &pos, nil
}

// WritePosition saves the review position of a user.
func (r *ProgressRepository) WritePosition(ctx context.Context, pos *entities.Position) error {
	query := `
		INSERT INTO review_positions (user_id, tier, item_index, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			tier = EXCLUDED.tier,
			item_index = EXCLUDED.item_index,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, pos.UserID, pos.Tier, pos.Index); err != nil {
		return fmt.Errorf("save position: %w", err)
	}

	return nil
}
