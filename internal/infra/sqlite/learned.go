package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

type LearnedRepository struct {
	db *sqlx.DB
}

func NewLearnedRepository(db *sqlx.DB) *LearnedRepository {
	return &LearnedRepository{db: db}
}

// RecordLearned upserts on (user_id, item_id, tier).
func (r *LearnedRepository) RecordLearned(ctx context.Context, rec *entities.LearnedRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO learned_vocabulary (user_id, item_id, tier, source_text, target_text, learned_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, item_id, tier) DO UPDATE SET
			source_text = excluded.source_text,
			target_text = excluded.target_text,
			learned_at = excluded.learned_at`,
		rec.UserID, rec.ItemID, string(rec.Tier), rec.SourceText, rec.TargetText, rec.LearnedAt,
	)
	if err != nil {
		return fmt.Errorf("record learned: %w", err)
	}
	return nil
}

func (r *LearnedRepository) CountLearned(ctx context.Context, userID string, tier entities.Tier) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM learned_vocabulary WHERE user_id = ? AND tier = ?`, userID, string(tier))
	if err != nil {
		return 0, fmt.Errorf("count learned: %w", err)
	}
	return n, nil
}
