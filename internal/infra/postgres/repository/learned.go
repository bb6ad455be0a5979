package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/infra/postgres"
)

// LearnedRepository stores which words a user answered correctly.
type LearnedRepository struct {
	db postgres.DBTX
}

func NewLearnedRepository(db postgres.DBTX) *LearnedRepository {
	return &LearnedRepository{db: db}
}

// RecordLearned upserts on (user_id, item_id, tier); repeating it only
// refreshes the timestamp and texts.
func (r *LearnedRepository) RecordLearned(ctx context.Context, rec *entities.LearnedRecord) error {
	query := `
		INSERT INTO learned_vocabulary (user_id, item_id, tier, source_text, target_text, learned_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, item_id, tier) DO UPDATE SET
			source_text = EXCLUDED.source_text,
			target_text = EXCLUDED.target_text,
			learned_at = EXCLUDED.learned_at
	`

	_, err := r.db.Exec(ctx, query,
		rec.UserID, rec.ItemID, rec.Tier, rec.SourceText, rec.TargetText, rec.LearnedAt,
	)
	if err != nil {
		return fmt.Errorf("record learned: %w", err)
	}

	return nil
}

// CountLearned counts the learned words of a user on one tier.
func (r *LearnedRepository) CountLearned(ctx context.Context, userID string, tier entities.Tier) (int, error) {
	query := `SELECT COUNT(*) FROM learned_vocabulary WHERE user_id = $1 AND tier = $2`

	var n int
	if err := r.db.QueryRow(ctx, query, userID, tier).Scan(&n); err != nil {
		return 0, fmt.Errorf("count learned: %w", err)
	}

	return n, nil
}
