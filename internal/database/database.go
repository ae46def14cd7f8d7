package database

import (
	"context"
	"fmt"
	"time"

	"cafe-site/internal/config"
	"cafe-site/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Open creates the PostgreSQL connection pool described by cfg and applies the
// schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := repository.NewPool(ctx, cfg.ConnectionString(), repository.PoolConfig{
		MaxConns:        int32(cfg.MaxConnections),
		MinConns:        int32(cfg.MinConnections),
		MaxConnLifetime: time.Duration(cfg.MaxConnLifetime) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("database connection pool created successfully")

	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info().Msg("database schema is up to date")

	return pool, nil
}
