package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

type progressRow struct {
	UserID         string       `db:"user_id"`
	Score          int          `db:"score"`
	WordsLearned   int          `db:"words_learned"`
	LearningStreak int          `db:"learning_streak"`
	LongestStreak  int          `db:"longest_streak"`
	QuizAccuracy   float64      `db:"quiz_accuracy"`
	LastActiveDate sql.NullTime `db:"last_active_date"`
}

type positionRow struct {
	UserID string `db:"user_id"`
	Tier   string `db:"tier"`
	Index  int    `db:"item_index"`
}

// ProgressRepository stores user progress and the review position in SQLite.
type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ReadProgress returns the progress of a user, creating the default record the first time.
func (r *ProgressRepository) ReadProgress(ctx context.Context, userID string) (*entities.UserProgress, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO user_progress (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`, userID,
	); err != nil {
		return nil, fmt.Errorf("init progress: %w", err)
	}

	var row progressRow
	err := r.db.GetContext(ctx, &row, `
		SELECT user_id, score, words_learned, learning_streak, longest_streak, quiz_accuracy, last_active_date
		FROM user_progress WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	p := &entities.UserProgress{
		UserID:         row.UserID,
		Score:          row.Score,
		WordsLearned:   row.WordsLearned,
		LearningStreak: row.LearningStreak,
		LongestStreak:  row.LongestStreak,
		QuizAccuracy:   row.QuizAccuracy,
	}
	if row.LastActiveDate.Valid {
		t := row.LastActiveDate.Time
		p.LastActiveDate = &t
	}

	return p, nil
}

// WriteProgress merges update into the stored record in a single statement.
func (r *ProgressRepository) WriteProgress(ctx context.Context, userID string, update entities.ProgressUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	query := `
		INSERT INTO user_progress (
			user_id, score, words_learned, learning_streak, longest_streak, quiz_accuracy, last_active_date
		) VALUES (
			:user_id, :score, :words_learned,
			COALESCE(:streak, 0), COALESCE(:longest, 0), COALESCE(:accuracy, 0), :last_active
		)
		ON CONFLICT (user_id) DO UPDATE SET
			score = user_progress.score + excluded.score,
			words_learned = user_progress.words_learned + excluded.words_learned,
			learning_streak = COALESCE(:streak, user_progress.learning_streak),
			longest_streak = COALESCE(:longest, user_progress.longest_streak),
			quiz_accuracy = COALESCE(:accuracy, user_progress.quiz_accuracy),
			last_active_date = COALESCE(:last_active, user_progress.last_active_date)
	`

	args := map[string]any{
		"user_id":       userID,
		"score":         update.ScoreDelta,
		"words_learned": update.WordsLearnedDelta,
		"streak":        nullableInt(update.LearningStreak),
		"longest":       nullableInt(update.LongestStreak),
		"accuracy":      nullableFloat(update.QuizAccuracy),
		"last_active":   nullableTime(update.LastActiveDate),
	}

	if _, err := r.db.NamedExecContext(ctx, query, args); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}

	return nil
}

// ReadPosition returns the saved review position or entities.ErrPositionNotFound.
func (r *ProgressRepository) ReadPosition(ctx context.Context, userID string) (*entities.Position, error) {
	var row positionRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, tier, item_index FROM review_positions WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrPositionNotFound
		}
		return nil, fmt.Errorf("get position: %w", err)
	}

	return &entities.Position{UserID: row.UserID, Tier: entities.Tier(row.Tier), Index: row.Index}, nil
}

func (r *ProgressRepository) WritePosition(ctx context.Context, pos *entities.Position) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_positions (user_id, tier, item_index, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			tier = excluded.tier,
			item_index = excluded.item_index,
			updated_at = excluded.updated_at`,
		pos.UserID, string(pos.Tier), pos.Index,
	)
	if err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	return nil
}
