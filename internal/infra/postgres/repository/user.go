package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/infra/postgres"
)

type userRow struct {
	ID        string    `db:"id"`
	ChatID    int64     `db:"chat_id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

// UserRepository stores learners keyed by their client-prefixed id.
type UserRepository struct {
	db postgres.DBTX
}

func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save registers the user or refreshes its chat data.
// xmax is zero only for a freshly inserted row, which tells both cases apart.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	const query = `
		INSERT INTO users (id, chat_id, username, created_at)
		VALUES (@id, @chat_id, @username, @created_at)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			username = EXCLUDED.username
		RETURNING (xmax = 0) AS created
	`

	args := pgx.NamedArgs{
		"id":         user.ID,
		"chat_id":    user.ChatID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}

	var created bool
	if err := r.db.QueryRow(ctx, query, args).Scan(&created); err != nil {
		return false, fmt.Errorf("save user %s: %w", user.ID, err)
	}

	return created, nil
}

func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user %s: %w", userID, err)
	}
	return exists, nil
}

// GetByID returns entities.ErrUserNotFound for unknown ids.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, chat_id, username, created_at FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}

	return &entities.User{
		ID:        row.ID,
		ChatID:    row.ChatID,
		Username:  row.Username,
		CreatedAt: row.CreatedAt,
	}, nil
}
