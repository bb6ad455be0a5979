package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/infra/postgres"
)

const vocabularyColumns = `id, source_text, target_text, tier, category, COALESCE(owner_id, ''), created_at, last_modified`

// Shared words are listed beginner first, then by insertion order.
const tierOrder = `CASE tier WHEN 'beginner' THEN 1 WHEN 'intermediate' THEN 2 WHEN 'advanced' THEN 3 ELSE 4 END`

// VocabularyRepository provides access to shared and personal words.
type VocabularyRepository struct {
	db postgres.DBTX
	tr *postgres.Transactor
}

// NewVocabularyRepository creates a repository. tr is used by ReplaceShared.
func NewVocabularyRepository(db postgres.DBTX, tr *postgres.Transactor) *VocabularyRepository {
	return &VocabularyRepository{db: db, tr: tr}
}

// FetchByTier returns the shared words of one tier.
func (r *VocabularyRepository) FetchByTier(ctx context.Context, tier entities.Tier) ([]*entities.VocabularyItem, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE tier = $1 AND owner_id IS NULL
		ORDER BY seq
	`

	return r.queryItems(ctx, "fetch vocabulary by tier", query, tier)
}

// FetchAll returns every shared word.
func (r *VocabularyRepository) FetchAll(ctx context.Context) ([]*entities.VocabularyItem, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE owner_id IS NULL
		ORDER BY ` + tierOrder + `, seq
	`

	return r.queryItems(ctx, "fetch all vocabulary", query)
}

// FetchOwnedBy returns the personal words of a user.
func (r *VocabularyRepository) FetchOwnedBy(ctx context.Context, userID string) ([]*entities.VocabularyItem, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE owner_id = $1
		ORDER BY created_at, seq
	`

	return r.queryItems(ctx, "fetch personal vocabulary", query, userID)
}

// FetchOwnedByCategory returns the personal words of a user in one category.
func (r *VocabularyRepository) FetchOwnedByCategory(ctx context.Context, userID, category string) ([]*entities.VocabularyItem, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE owner_id = $1 AND category = $2
		ORDER BY created_at, seq
	`

	return r.queryItems(ctx, "fetch personal vocabulary by category", query, userID, category)
}

// CountByTier counts the shared words of one tier.
func (r *VocabularyRepository) CountByTier(ctx context.Context, tier entities.Tier) (int, error) {
	query := `SELECT COUNT(*) FROM vocabulary WHERE tier = $1 AND owner_id IS NULL`

	var n int
	if err := r.db.QueryRow(ctx, query, tier).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vocabulary: %w", err)
	}

	return n, nil
}

// Create inserts a new word.
func (r *VocabularyRepository) Create(ctx context.Context, item *entities.VocabularyItem) error {
	return insertItem(ctx, r.db, item)
}

// Update changes the text of a word owned by ownerID.
// It fails with entities.ErrNotFoundOrUnauthorized when no such word exists.
func (r *VocabularyRepository) Update(ctx context.Context, ownerID string, item *entities.VocabularyItem) error {
	query := `
		UPDATE vocabulary
		SET source_text = $3, target_text = $4, category = $5, last_modified = $6
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.db.Exec(ctx, query,
		item.ID, ownerID, item.SourceText, item.TargetText, item.Category, item.LastModified,
	)
	if err != nil {
		return fmt.Errorf("update vocabulary: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entities.ErrNotFoundOrUnauthorized
	}

	return nil
}

// Delete removes a word owned by ownerID.
func (r *VocabularyRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vocabulary WHERE id = $1 AND owner_id = $2`, itemID, ownerID)
	if err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entities.ErrNotFoundOrUnauthorized
	}

	return nil
}

// DeleteAllOwned removes every personal word of ownerID.
func (r *VocabularyRepository) DeleteAllOwned(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM vocabulary WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete personal vocabulary: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ReplaceShared swaps the whole shared vocabulary in one transaction.
func (r *VocabularyRepository) ReplaceShared(ctx context.Context, items []*entities.VocabularyItem) error {
	return r.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		if _, err := tx.Exec(ctx, `DELETE FROM vocabulary WHERE owner_id IS NULL`); err != nil {
			return fmt.Errorf("clear shared vocabulary: %w", err)
		}

		for _, item := range items {
			if err := insertItem(ctx, tx, item); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertItem(ctx context.Context, db postgres.DBTX, item *entities.VocabularyItem) error {
	query := `
		INSERT INTO vocabulary (id, source_text, target_text, tier, category, owner_id, created_at, last_modified)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`

	_, err := db.Exec(ctx, query,
		item.ID,
		item.SourceText,
		item.TargetText,
		item.Tier,
		item.Category,
		item.OwnerID,
		item.CreatedAt,
		item.LastModified,
	)
	if err != nil {
		return fmt.Errorf("insert vocabulary %s: %w", item.ID, err)
	}

	return nil
}

func (r *VocabularyRepository) queryItems(ctx context.Context, op, query string, args ...any) ([]*entities.VocabularyItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.VocabularyItem, error) {
		var item entities.VocabularyItem
		err := row.Scan(
			&item.ID,
			&item.SourceText,
			&item.TargetText,
			&item.Tier,
			&item.Category,
			&item.OwnerID,
			&item.CreatedAt,
			&item.LastModified,
		)
		return &item, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
