package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	database "github.com/FACorreiaa/go-india-travel-guide/app/db"
	"github.com/FACorreiaa/go-india-travel-guide/config"
)

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Storage, error) {
	logger = logger.With(slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case "", "memory":
		logger.Warn("Using in-memory storage, state will not survive a restart")
		return NewMemoryStorage(), nil

	case "sqlite":
		s, err := OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened sqlite storage", slog.String("path", cfg.SQLite.Path))
		return s, nil

	case "postgres":
		namespace, err := uuid.Parse(cfg.Namespace)
		if err != nil {
			return nil, fmt.Errorf("invalid storage namespace %q: %w", cfg.Namespace, err)
		}
		dbConfig, err := database.NewDatabaseConfig(cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
			return nil, err
		}
		pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
		if err != nil {
			return nil, err
		}
		if !database.WaitForDB(ctx, pool, logger) {
			pool.Close()
			return nil, fmt.Errorf("database not ready")
		}
		return NewPostgresStorage(pool, namespace), nil

	case "redis":
		return NewRedisStorage(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Namespace)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
