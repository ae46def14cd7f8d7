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

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// List retrieves every category ordered by sort order then name.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, slug, sort_order, created_at
		FROM categories
		ORDER BY sort_order, name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	query := `SELECT id, name, slug, sort_order, created_at FROM categories WHERE id = $1`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Slug, category.SortOrder, category.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", category.ID).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update renames or reorders a category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (bool, error) {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, sort_order = $4
		WHERE id = $1
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, category.ID, category.Name, category.Slug, category.SortOrder).
		Scan(&category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).Str("category_id", category.ID).Msg("failed to update category")
		return false, fmt.Errorf("failed to update category: %w", err)
	}

	return true, nil
}

// Delete removes a category.
func (r *categoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
