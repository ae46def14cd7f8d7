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

const menuColumns = `id, name, description, price, category_id, image_url, available, featured, sort_order, created_at, updated_at`

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

func scanMenuItem(row pgx.Row) (model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.CategoryID,
		&m.ImageURL,
		&m.Available,
		&m.Featured,
		&m.SortOrder,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *menuRepository) collect(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// List retrieves every menu item ordered by sort order then name.
func (r *menuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items ORDER BY sort_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single menu item by its ID.
func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1`

	m, err := scanMenuItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("menu_item_id", id).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &m, nil
}

// GetByIDs retrieves multiple menu items by their IDs.
func (r *menuRepository) GetByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return []model.MenuItem{}, nil
	}

	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = ANY($1) ORDER BY sort_order, name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query menu items by IDs")
		return nil, fmt.Errorf("failed to query menu items by IDs: %w", err)
	}

	return r.collect(rows)
}

// CountExisting returns how many of the given IDs exist.
func (r *menuRepository) CountExisting(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(DISTINCT id) FROM menu_items WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to count menu items")
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	return count, nil
}

// CountByCategory returns how many menu items reference a category.
func (r *menuRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", categoryID).Msg("failed to count menu items by category")
		return 0, fmt.Errorf("failed to count menu items by category: %w", err)
	}

	return count, nil
}

// Create inserts a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (` + menuColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.ImageURL,
		item.Available,
		item.Featured,
		item.SortOrder,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", item.ID).Msg("failed to create menu item")
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	r.logger.Debug().Str("menu_item_id", item.ID).Msg("menu item created successfully")
	return nil
}

// Update replaces a menu item.
func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) (bool, error) {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category_id = $5, image_url = $6,
			available = $7, featured = $8, sort_order = $9, updated_at = $10
		WHERE id = $1
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.ImageURL,
		item.Available,
		item.Featured,
		item.SortOrder,
		item.UpdatedAt,
	).Scan(&item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).Str("menu_item_id", item.ID).Msg("failed to update menu item")
		return false, fmt.Errorf("failed to update menu item: %w", err)
	}

	return true, nil
}

// Delete removes a menu item.
func (r *menuRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to delete menu item")
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
