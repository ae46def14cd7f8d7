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

const promotionColumns = `id, title, description, type, value, active, start_date, end_date,
	applicable_items, code, min_purchase, usage_limit, usage_count, created_at, updated_at`

// promotionRepository implements the PromotionRepository interface using PostgreSQL.
type promotionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromotionRepository creates a new PostgreSQL-backed promotion repository.
func NewPromotionRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromotionRepository {
	return &promotionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promotion").Logger(),
	}
}

func scanPromotion(row pgx.Row) (model.Promotion, error) {
	var p model.Promotion
	var typ string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&typ,
		&p.Value,
		&p.Active,
		&p.StartDate,
		&p.EndDate,
		&p.ApplicableItems,
		&p.Code,
		&p.MinPurchase,
		&p.UsageLimit,
		&p.UsageCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Type = model.PromotionType(typ)
	return p, err
}

// List retrieves every promotion in creation order.
func (r *promotionRepository) List(ctx context.Context) ([]model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promotions")
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	defer rows.Close()

	promotions := []model.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promotion row")
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promotion rows")
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promotions, nil
}

// GetByID retrieves a single promotion by its ID.
func (r *promotionRepository) GetByID(ctx context.Context, id string) (*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`

	p, err := scanPromotion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("promotion_id", id).Msg("promotion not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("promotion_id", id).Msg("failed to query promotion")
		return nil, fmt.Errorf("failed to query promotion: %w", err)
	}

	return &p, nil
}

// Create inserts a new promotion.
func (r *promotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	query := `
		INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		string(p.Type),
		p.Value,
		p.Active,
		p.StartDate,
		p.EndDate,
		applicableItems(p),
		p.Code,
		p.MinPurchase,
		p.UsageLimit,
		p.UsageCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("promotion_id", p.ID).Msg("failed to create promotion")
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	r.logger.Debug().Str("promotion_id", p.ID).Msg("promotion created successfully")
	return nil
}

// Update replaces a promotion. The usage counter is kept as stored.
func (r *promotionRepository) Update(ctx context.Context, p *model.Promotion) (bool, error) {
	query := `
		UPDATE promotions
		SET title = $2, description = $3, type = $4, value = $5, active = $6,
			start_date = $7, end_date = $8, applicable_items = $9, code = $10,
			min_purchase = $11, usage_limit = $12, updated_at = $13
		WHERE id = $1
		RETURNING usage_count, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		string(p.Type),
		p.Value,
		p.Active,
		p.StartDate,
		p.EndDate,
		applicableItems(p),
		p.Code,
		p.MinPurchase,
		p.UsageLimit,
		p.UpdatedAt,
	).Scan(&p.UsageCount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).Str("promotion_id", p.ID).Msg("failed to update promotion")
		return false, fmt.Errorf("failed to update promotion: %w", err)
	}

	return true, nil
}

// Delete removes a promotion.
func (r *promotionRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promotion_id", id).Msg("failed to delete promotion")
		return false, fmt.Errorf("failed to delete promotion: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// applicableItems never sends NULL for the NOT NULL array column.
func applicableItems(p *model.Promotion) []string {
	if p.ApplicableItems == nil {
		return []string{}
	}
	return p.ApplicableItems
}
