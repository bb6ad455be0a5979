package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env                string  `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken   string  `mapstructure:"-"`   // Telegram API token loaded from environment
	VocabularySeedPath string  `mapstructure:"vocabulary_seed_path"`
	Timezone           string  `mapstructure:"timezone"` // location used to count streak days
	Storage            Storage `mapstructure:"storage"`
	DB                 DB      `mapstructure:"database"` // database configuration section
	SQLite             SQLite  `mapstructure:"sqlite"`
	Session            Session `mapstructure:"session"`
	Learn              Learn   `mapstructure:"learn"`
}

// Storage selects the backing store.
type Storage struct {
	Driver string `mapstructure:"driver"` // postgres or sqlite
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// SQLite configures the local storage file.
type SQLite struct {
	Path string `mapstructure:"path"`
}

// Session controls in-memory session eviction.
type Session struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec
}

// Learn configures the word review mode.
type Learn struct {
	Debounce time.Duration `mapstructure:"debounce"` // quiet period before the position is saved
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
// It validates the storage settings; the Telegram token is checked by RequireTelegram.
func Load() (*Config, error) {
	// A missing .env file is fine, the variables may come from the environment.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("vocabulary_seed_path", "assets/data/vocabulary.json")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("sqlite.path", "data/vokabel.db")
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.sweep_schedule", "*/10 * * * *")
	v.SetDefault("learn.debounce", "500ms")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("sqlite.path", "SQLITE_PATH")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RequireTelegram reports an error when the bot token is missing.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("%w: SQLITE_PATH", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	return nil
}
