package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

type vocabularyRow struct {
	ID           string    `db:"id"`
	SourceText   string    `db:"source_text"`
	TargetText   string    `db:"target_text"`
	Tier         string    `db:"tier"`
	Category     string    `db:"category"`
	OwnerID      string    `db:"owner_id"`
	CreatedAt    time.Time `db:"created_at"`
	LastModified time.Time `db:"last_modified"`
}

func (r vocabularyRow) toEntity() *entities.VocabularyItem {
	return &entities.VocabularyItem{
		ID:           r.ID,
		SourceText:   r.SourceText,
		TargetText:   r.TargetText,
		Tier:         entities.Tier(r.Tier),
		Category:     r.Category,
		OwnerID:      r.OwnerID,
		CreatedAt:    r.CreatedAt,
		LastModified: r.LastModified,
	}
}

func newVocabularyRow(item *entities.VocabularyItem) vocabularyRow {
	return vocabularyRow{
		ID:           item.ID,
		SourceText:   item.SourceText,
		TargetText:   item.TargetText,
		Tier:         string(item.Tier),
		Category:     item.Category,
		OwnerID:      item.OwnerID,
		CreatedAt:    item.CreatedAt,
		LastModified: item.LastModified,
	}
}

const selectVocabulary = `
	SELECT id, source_text, target_text, tier, category, owner_id, created_at, last_modified
	FROM vocabulary
`

// VocabularyRepository stores shared and personal words in SQLite.
// Shared words have an empty owner_id.
type VocabularyRepository struct {
	db *sqlx.DB
}

func NewVocabularyRepository(db *sqlx.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

func (r *VocabularyRepository) FetchByTier(ctx context.Context, tier entities.Tier) ([]*entities.VocabularyItem, error) {
	return r.selectItems(ctx, "fetch vocabulary by tier",
		selectVocabulary+`WHERE tier = ? AND owner_id = '' ORDER BY seq`, string(tier))
}

func (r *VocabularyRepository) FetchAll(ctx context.Context) ([]*entities.VocabularyItem, error) {
	return r.selectItems(ctx, "fetch all vocabulary",
		selectVocabulary+`WHERE owner_id = ''
		ORDER BY CASE tier WHEN 'beginner' THEN 1 WHEN 'intermediate' THEN 2 WHEN 'advanced' THEN 3 ELSE 4 END, seq`)
}

func (r *VocabularyRepository) FetchOwnedBy(ctx context.Context, userID string) ([]*entities.VocabularyItem, error) {
	if userID == "" {
		return nil, nil
	}
	return r.selectItems(ctx, "fetch personal vocabulary",
		selectVocabulary+`WHERE owner_id = ? ORDER BY created_at, seq`, userID)
}

func (r *VocabularyRepository) FetchOwnedByCategory(ctx context.Context, userID, category string) ([]*entities.VocabularyItem, error) {
	if userID == "" {
		return nil, nil
	}
	return r.selectItems(ctx, "fetch personal vocabulary by category",
		selectVocabulary+`WHERE owner_id = ? AND category = ? ORDER BY created_at, seq`, userID, category)
}

func (r *VocabularyRepository) CountByTier(ctx context.Context, tier entities.Tier) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM vocabulary WHERE tier = ? AND owner_id = ''`, string(tier))
	if err != nil {
		return 0, fmt.Errorf("count vocabulary: %w", err)
	}
	return n, nil
}

func (r *VocabularyRepository) Create(ctx context.Context, item *entities.VocabularyItem) error {
	return insertItem(ctx, r.db, item)
}

// Update fails with entities.ErrNotFoundOrUnauthorized unless ownerID owns the word.
func (r *VocabularyRepository) Update(ctx context.Context, ownerID string, item *entities.VocabularyItem) error {
	if ownerID == "" {
		return entities.ErrNotFoundOrUnauthorized
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE vocabulary
		SET source_text = ?, target_text = ?, category = ?, last_modified = ?
		WHERE id = ? AND owner_id = ?`,
		item.SourceText, item.TargetText, item.Category, item.LastModified, item.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("update vocabulary: %w", err)
	}

	return requireAffected(res)
}

// Delete fails with entities.ErrNotFoundOrUnauthorized unless ownerID owns the word.
func (r *VocabularyRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	if ownerID == "" {
		return entities.ErrNotFoundOrUnauthorized
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE id = ? AND owner_id = ?`, itemID, ownerID)
	if err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}

	return requireAffected(res)
}

func (r *VocabularyRepository) DeleteAllOwned(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE owner_id = ?`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete personal vocabulary: %w", err)
	}

	return res.RowsAffected()
}

// ReplaceShared swaps the shared vocabulary in one transaction.
func (r *VocabularyRepository) ReplaceShared(ctx context.Context, items []*entities.VocabularyItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocabulary WHERE owner_id = ''`); err != nil {
		return fmt.Errorf("clear shared vocabulary: %w", err)
	}

	shared := lo.Filter(items, func(item *entities.VocabularyItem, _ int) bool { return item.Tier.IsShared() })
	for _, item := range shared {
		if err := insertItem(ctx, tx, item); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertItem(ctx context.Context, db sqlx.ExtContext, item *entities.VocabularyItem) error {
	query := `
		INSERT INTO vocabulary (id, source_text, target_text, tier, category, owner_id, created_at, last_modified)
		VALUES (:id, :source_text, :target_text, :tier, :category, :owner_id, :created_at, :last_modified)
	`

	if _, err := sqlx.NamedExecContext(ctx, db, query, newVocabularyRow(item)); err != nil {
		return fmt.Errorf("insert vocabulary %s: %w", item.ID, err)
	}

	return nil
}

func (r *VocabularyRepository) selectItems(ctx context.Context, op, query string, args ...any) ([]*entities.VocabularyItem, error) {
	var rows []vocabularyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lo.Map(rows, func(row vocabularyRow, _ int) *entities.VocabularyItem { return row.toEntity() }), nil
}
