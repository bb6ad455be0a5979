package config

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"postgres", Config{Storage: Storage{Driver: DriverPostgres}, DB: DB{URL: "postgres://x"}}, nil},
		{"postgres without url", Config{Storage: Storage{Driver: DriverPostgres}}, ErrMissingEnvironmentVariables},
		{"sqlite", Config{Storage: Storage{Driver: DriverSQLite}, SQLite: SQLite{Path: "data/x.db"}}, nil},
		{"sqlite without path", Config{Storage: Storage{Driver: DriverSQLite}}, ErrMissingEnvironmentVariables},
		{"unknown driver", Config{Storage: Storage{Driver: "mongo"}}, ErrUnknownStorageDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "tmp/test.db")
	t.Setenv("TELEGRAM_API_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Driver != DriverSQLite || cfg.SQLite.Path != "tmp/test.db" {
		t.Errorf("storage = %+v %+v", cfg.Storage, cfg.SQLite)
	}
	if cfg.Learn.Debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v, want 500ms", cfg.Learn.Debounce)
	}
	if cfg.Session.IdleTTL != 30*time.Minute {
		t.Errorf("idle ttl = %v, want 30m", cfg.Session.IdleTTL)
	}
	if err := cfg.RequireTelegram(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("RequireTelegram() = %v, want ErrMissingEnvironmentVariables", err)
	}
}
