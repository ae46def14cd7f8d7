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

// galleryRepository implements the GalleryRepository interface using PostgreSQL.
type galleryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewGalleryRepository creates a new PostgreSQL-backed gallery repository.
func NewGalleryRepository(pool *pgxpool.Pool, logger zerolog.Logger) GalleryRepository {
	return &galleryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "gallery").Logger(),
	}
}

func scanGalleryItem(row pgx.Row) (model.GalleryItem, error) {
	var g model.GalleryItem
	var typ string
	err := row.Scan(&g.ID, &typ, &g.URL, &g.StorageKey, &g.Caption, &g.SortOrder, &g.CreatedAt)
	g.Type = model.GalleryType(typ)
	return g, err
}

// List retrieves every gallery item ordered by sort order, newest first within
// the same position.
func (r *galleryRepository) List(ctx context.Context) ([]model.GalleryItem, error) {
	query := `
		SELECT id, type, url, storage_key, caption, sort_order, created_at
		FROM gallery_items
		ORDER BY sort_order, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query gallery items")
		return nil, fmt.Errorf("failed to query gallery items: %w", err)
	}
	defer rows.Close()

	items := []model.GalleryItem{}
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan gallery item row")
			return nil, fmt.Errorf("failed to scan gallery item: %w", err)
		}
		items = append(items, g)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating gallery item rows")
		return nil, fmt.Errorf("error iterating gallery items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single gallery item by its ID.
func (r *galleryRepository) GetByID(ctx context.Context, id string) (*model.GalleryItem, error) {
	query := `
		SELECT id, type, url, storage_key, caption, sort_order, created_at
		FROM gallery_items
		WHERE id = $1
	`

	g, err := scanGalleryItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("gallery_item_id", id).Msg("gallery item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("gallery_item_id", id).Msg("failed to query gallery item")
		return nil, fmt.Errorf("failed to query gallery item: %w", err)
	}

	return &g, nil
}

// Create inserts a new gallery item.
func (r *galleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (id, type, url, storage_key, caption, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		string(item.Type),
		item.URL,
		item.StorageKey,
		item.Caption,
		item.SortOrder,
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("gallery_item_id", item.ID).Msg("failed to create gallery item")
		return fmt.Errorf("failed to create gallery item: %w", err)
	}

	return nil
}

// Update changes the caption and position of a gallery item.
func (r *galleryRepository) Update(ctx context.Context, item *model.GalleryItem) (bool, error) {
	query := `
		UPDATE gallery_items
		SET caption = $2, sort_order = $3
		WHERE id = $1
		RETURNING type, url, storage_key, created_at
	`

	var typ string
	err := r.pool.QueryRow(ctx, query, item.ID, item.Caption, item.SortOrder).
		Scan(&typ, &item.URL, &item.StorageKey, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).Str("gallery_item_id", item.ID).Msg("failed to update gallery item")
		return false, fmt.Errorf("failed to update gallery item: %w", err)
	}
	item.Type = model.GalleryType(typ)

	return true, nil
}

// Delete removes a gallery item record.
func (r *galleryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("gallery_item_id", id).Msg("failed to delete gallery item")
		return false, fmt.Errorf("failed to delete gallery item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
