// Package app assembles the service from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/api/http/handlers"
	"github.com/spec-kit/contact-service/internal/config"
	"github.com/spec-kit/contact-service/internal/persistence"
	"github.com/spec-kit/contact-service/internal/repository"
	"github.com/spec-kit/contact-service/internal/repository/mongodb"
	"github.com/spec-kit/contact-service/internal/repository/postgres"
	"github.com/spec-kit/contact-service/internal/repository/sqlite"
)

// Store is an opened backend with its repositories and readiness probes.
type Store struct {
	Driver   string
	Users    repository.UserRepository
	Contacts repository.ContactRepository
	Pingers  map[string]handlers.Pinger

	closers []func(context.Context) error
}

// Close releases every connection the store opened.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore connects to the backend selected by cfg.Store.Driver and applies
// schema changes when the driver's migration flag is set.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Postgres, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.SQLite, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg.Mongo, logger)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// Migrate opens the configured backend with migrations forced on and closes it again.
func Migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	forced := *cfg
	forced.Postgres.RunMigrations = true
	forced.SQLite.RunMigrations = true
	forced.Mongo.EnsureIndexes = true

	store, err := OpenStore(ctx, &forced, logger)
	if err != nil {
		return err
	}
	return store.Close(ctx)
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Store, error) {
	pg, err := persistence.NewPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.RunMigrations {
		if err := persistence.RunPostgresMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	pool := pg.PoolHandle()
	return &Store{
		Driver:   config.DriverPostgres,
		Users:    postgres.NewUserRepository(pool),
		Contacts: postgres.NewContactRepository(pool),
		Pingers:  map[string]handlers.Pinger{"postgres": pg.Ping},
		closers: []func(context.Context) error{func(context.Context) error {
			pg.Close()
			return nil
		}},
	}, nil
}

func openSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*Store, error) {
	db, err := persistence.NewSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if cfg.RunMigrations {
		if err := persistence.RunSQLiteMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
	}

	return &Store{
		Driver:   config.DriverSQLite,
		Users:    sqlite.NewUserRepository(db),
		Contacts: sqlite.NewContactRepository(db),
		Pingers:  map[string]handlers.Pinger{"sqlite": db.Ping},
		closers: []func(context.Context) error{func(context.Context) error {
			return db.Close()
		}},
	}, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Store, error) {
	m, err := persistence.NewMongo(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if cfg.EnsureIndexes {
		if err := mongodb.EnsureIndexes(ctx, m.Database); err != nil {
			_ = m.Close(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
	}

	return &Store{
		Driver:   config.DriverMongo,
		Users:    mongodb.NewUserRepository(m.Database),
		Contacts: mongodb.NewContactRepository(m.Database),
		Pingers:  map[string]handlers.Pinger{"mongo": m.Ping},
		closers:  []func(context.Context) error{m.Close},
	}, nil
}
