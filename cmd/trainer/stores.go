package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/config"
	"github.com/aliskhannn/vokabel-trainer/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/vokabel-trainer/internal/infra/postgres/repository"
	"github.com/aliskhannn/vokabel-trainer/internal/infra/sqlite"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

// backend is the storage selected by configuration.
type backend struct {
	stores   service.Stores
	users    service.UserRepository
	resetter service.UserResetter
	close    func()
}

// openBackend connects to the configured driver and prepares its schema.
func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, fmt.Errorf("%w: DATABASE_URL", err)
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		tr := postgres.NewTransactor(pool)
		progress := pgrepo.NewProgressRepository(pool)

		log.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

		return &backend{
			stores: service.Stores{
				Words:    pgrepo.NewVocabularyRepository(pool, tr),
				Learned:  pgrepo.NewLearnedRepository(pool),
				Progress: progress,
			},
			users:    pgrepo.NewUserRepository(pool),
			resetter: pgrepo.NewResetRepository(tr),
			close:    pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}

		log.Info("storage ready",
			zap.String("driver", cfg.Storage.Driver),
			zap.String("path", cfg.SQLite.Path),
		)

		return &backend{
			stores: service.Stores{
				Words:    sqlite.NewVocabularyRepository(db),
				Learned:  sqlite.NewLearnedRepository(db),
				Progress: sqlite.NewProgressRepository(db),
			},
			users:    sqlite.NewUserRepository(db),
			resetter: sqlite.NewResetRepository(db),
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn("failed to close sqlite", zap.Error(err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
}
