package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ResetRepository struct {
	db *sqlx.DB
}

func NewResetRepository(db *sqlx.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetUser deletes everything the user accumulated in one transaction.
func (r *ResetRepository) ResetUser(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"learned_vocabulary", "review_positions", "user_progress"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocabulary WHERE owner_id = ? AND owner_id <> ''`, userID); err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}

	return tx.Commit()
}
