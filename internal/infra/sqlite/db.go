// Package sqlite implements the trainer stores on a local SQLite file.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the database at path, creating the file and its
// directory when missing, and initializes the schema.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func initSchema(ctx context.Context, db *sqlx.DB) error {
	tables := []struct {
		name string
		ddl  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id          TEXT PRIMARY KEY,
				chat_id     INTEGER NOT NULL DEFAULT 0,
				username    TEXT NOT NULL DEFAULT '',
				created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		{"vocabulary", `
			CREATE TABLE IF NOT EXISTS vocabulary (
				seq            INTEGER PRIMARY KEY AUTOINCREMENT,
				id             TEXT NOT NULL UNIQUE,
				source_text    TEXT NOT NULL,
				target_text    TEXT NOT NULL,
				tier           TEXT NOT NULL,
				category       TEXT NOT NULL DEFAULT '',
				owner_id       TEXT NOT NULL DEFAULT '',
				created_at     TIMESTAMP NOT NULL,
				last_modified  TIMESTAMP NOT NULL
			)`},
		{"vocabulary_owner_idx", `
			CREATE INDEX IF NOT EXISTS vocabulary_owner_idx ON vocabulary (owner_id, category)`},
		{"learned_vocabulary", `
			CREATE TABLE IF NOT EXISTS learned_vocabulary (
				user_id      TEXT NOT NULL,
				item_id      TEXT NOT NULL,
				tier         TEXT NOT NULL,
				source_text  TEXT NOT NULL,
				target_text  TEXT NOT NULL,
				learned_at   TIMESTAMP NOT NULL,
				PRIMARY KEY (user_id, item_id, tier)
			)`},
		{"user_progress", `
			CREATE TABLE IF NOT EXISTS user_progress (
				user_id           TEXT PRIMARY KEY,
				score             INTEGER NOT NULL DEFAULT 0,
				words_learned     INTEGER NOT NULL DEFAULT 0,
				learning_streak   INTEGER NOT NULL DEFAULT 0,
				longest_streak    INTEGER NOT NULL DEFAULT 0,
				quiz_accuracy     REAL NOT NULL DEFAULT 0,
				last_active_date  TIMESTAMP
			)`},
		{"review_positions", `
			CREATE TABLE IF NOT EXISTS review_positions (
				user_id     TEXT PRIMARY KEY,
				tier        TEXT NOT NULL,
				item_index  INTEGER NOT NULL DEFAULT 0,
				updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
	}

	for _, t := range tables {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", t.name, err)
		}
	}

	return nil
}
