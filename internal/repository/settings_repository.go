package repository

import (
	"context"
	"errors"
	"fmt"

	"cafe-site/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// settingsRepository stores the site settings as a single JSONB document.
type settingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "settings").Logger(),
	}
}

// Get retrieves the saved settings, or nil when none were saved yet.
func (r *settingsRepository) Get(ctx context.Context) (*model.SiteSettings, error) {
	var s model.SiteSettings
	err := r.pool.QueryRow(ctx, `SELECT data, updated_at FROM site_settings WHERE id = 1`).
		Scan(&s, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Msg("site settings not saved yet")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query site settings")
		return nil, fmt.Errorf("failed to query site settings: %w", err)
	}

	return &s, nil
}

// Save replaces the settings document.
func (r *settingsRepository) Save(ctx context.Context, settings *model.SiteSettings) error {
	query := `
		INSERT INTO site_settings (id, data, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, settings, settings.UpdatedAt); err != nil {
		r.logger.Error().Err(err).Msg("failed to save site settings")
		return fmt.Errorf("failed to save site settings: %w", err)
	}

	return nil
}
