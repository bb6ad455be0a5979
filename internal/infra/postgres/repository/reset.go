package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vokabel-trainer/internal/infra/postgres"
)

// ResetRepository wipes the learning state of a user in one transaction.
type ResetRepository struct {
	tr *postgres.Transactor
}

func NewResetRepository(tr *postgres.Transactor) *ResetRepository {
	return &ResetRepository{tr: tr}
}

// ResetUser deletes progress, learned words, the review position and
// personal words. The user row itself is kept.
func (s *ResetRepository) ResetUser(ctx context.Context, userID string) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		statements := []struct {
			table string
			query string
		}{
			{"learned_vocabulary", `DELETE FROM learned_vocabulary WHERE user_id = $1`},
			{"review_positions", `DELETE FROM review_positions WHERE user_id = $1`},
			{"user_progress", `DELETE FROM user_progress WHERE user_id = $1`},
			{"vocabulary", `DELETE FROM vocabulary WHERE owner_id = $1`},
		}

		for _, st := range statements {
			if _, err := tx.Exec(ctx, st.query, userID); err != nil {
				return fmt.Errorf("delete %s: %w", st.table, err)
			}
		}

		return nil
	})
}
