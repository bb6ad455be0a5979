package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a user or refreshes its chat data. It reports whether the user was created.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, chat_id, username, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		user.ID, user.ChatID, user.Username, user.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}
	if n == 1 {
		return true, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET chat_id = ?, username = ? WHERE id = ?`,
		user.ChatID, user.Username, user.ID,
	); err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}

	return false, nil
}

func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID); err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowxContext(ctx,
		`SELECT id, chat_id, username, created_at FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.ChatID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
