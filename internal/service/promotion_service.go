package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cafe-site/internal/events"
	"cafe-site/internal/model"
	"cafe-site/internal/promotion"
	"cafe-site/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// promotionService implements PromotionService.
type promotionService struct {
	promotionRepo repository.PromotionRepository
	menuRepo      repository.MenuRepository
	snapshot      PromotionSnapshot
	publisher     events.Publisher
	now           func() time.Time
	logger        zerolog.Logger
}

// NewPromotionService creates a new promotion service. Every write publishes a
// change event and refreshes the local snapshot.
func NewPromotionService(
	promotionRepo repository.PromotionRepository,
	menuRepo repository.MenuRepository,
	snapshot PromotionSnapshot,
	publisher events.Publisher,
	logger zerolog.Logger,
) PromotionService {
	return &promotionService{
		promotionRepo: promotionRepo,
		menuRepo:      menuRepo,
		snapshot:      snapshot,
		publisher:     publisher,
		now:           time.Now,
		logger:        logger.With().Str("service", "promotion").Logger(),
	}
}

func (s *promotionService) List(ctx context.Context) ([]model.Promotion, error) {
	promotions, err := s.promotionRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list promotions")
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, nil
}

// Active returns the promotions from the snapshot that are live right now, in
// snapshot order.
func (s *promotionService) Active(ctx context.Context) ([]model.Promotion, error) {
	now := s.now()
	active := []model.Promotion{}
	for _, p := range s.snapshot.Promotions() {
		if promotion.Live(&p, now) {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *promotionService) Get(ctx context.Context, id string) (*model.Promotion, error) {
	p, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("promotion_id", id).Msg("failed to get promotion")
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	if p == nil {
		return nil, model.ErrNotFound
	}
	return p, nil
}

func (s *promotionService) Create(ctx context.Context, req *model.PromotionRequest) (*model.Promotion, error) {
	if err := ValidatePromotion(req); err != nil {
		return nil, err
	}
	if err := s.checkApplicableItems(ctx, req.ApplicableItems); err != nil {
		return nil, err
	}

	now := s.now()
	p := &model.Promotion{ID: uuid.NewString(), CreatedAt: now}
	applyPromotionRequest(p, req, now)

	if err := s.promotionRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.logger.Info().Str("promotion_id", p.ID).Str("type", string(p.Type)).Msg("promotion created")
	s.changed(ctx, p.ID, "created")
	return p, nil
}

func (s *promotionService) Update(ctx context.Context, id string, req *model.PromotionRequest) (*model.Promotion, error) {
	if err := ValidatePromotion(req); err != nil {
		return nil, err
	}
	if err := s.checkApplicableItems(ctx, req.ApplicableItems); err != nil {
		return nil, err
	}

	p := &model.Promotion{ID: id}
	applyPromotionRequest(p, req, s.now())

	ok, err := s.promotionRepo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	s.logger.Info().Str("promotion_id", id).Msg("promotion updated")
	s.changed(ctx, id, "updated")
	return p, nil
}

func (s *promotionService) Delete(ctx context.Context, id string) error {
	ok, err := s.promotionRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}

	s.logger.Info().Str("promotion_id", id).Msg("promotion deleted")
	s.changed(ctx, id, "deleted")
	return nil
}

// checkApplicableItems rejects applicable items that name no stored menu item.
func (s *promotionService) checkApplicableItems(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	count, err := s.menuRepo.CountExisting(ctx, distinct)
	if err != nil {
		return fmt.Errorf("failed to check applicable items: %w", err)
	}
	if count != len(distinct) {
		s.logger.Warn().Strs("applicable_items", distinct).Int("found", count).Msg("promotion names unknown menu items")
		return model.InvalidPromotion("unknown menu item in applicableItems")
	}
	return nil
}

// changed propagates a stored write. The write already succeeded, so failures
// here are logged; the periodic refresh catches up.
func (s *promotionService) changed(ctx context.Context, id, action string) {
	if err := s.snapshot.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Str("promotion_id", id).Msg("failed to refresh promotion snapshot after write")
	}

	evt := events.Event{
		Type:       events.PromotionChanged,
		EntityID:   id,
		Action:     action,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("promotion_id", id).Msg("failed to publish promotion change")
	}
}

// ValidatePromotion checks a promotion request before it is stored:
// percentage values lie in 0..100, fixed values are not negative, both dates
// parse and the window does not end before it starts.
func ValidatePromotion(req *model.PromotionRequest) error {
	if req == nil {
		return model.ValidationError("request body is required")
	}
	if err := model.Validate(req); err != nil {
		return err
	}

	switch req.Type {
	case model.PromotionPercentage:
		if !req.Value.Valid {
			return model.InvalidPromotion("percentage promotions need a value")
		}
		if req.Value.Decimal.IsNegative() || req.Value.Decimal.GreaterThan(hundred) {
			return model.InvalidPromotion("percentage value must be between 0 and 100")
		}
	case model.PromotionFixed:
		if !req.Value.Valid {
			return model.InvalidPromotion("fixed promotions need a value")
		}
		if req.Value.Decimal.IsNegative() {
			return model.InvalidPromotion("fixed value must not be negative")
		}
	}

	start, ok := promotion.ParseStart(req.StartDate)
	if !ok {
		return model.InvalidPromotion("startDate must be YYYY-MM-DD or RFC 3339")
	}
	end, ok := promotion.ParseEnd(req.EndDate)
	if !ok {
		return model.InvalidPromotion("endDate must be YYYY-MM-DD or RFC 3339")
	}
	if end.Before(start) {
		return model.InvalidPromotion("endDate must not be before startDate")
	}

	if req.MinPurchase.Valid && req.MinPurchase.Decimal.IsNegative() {
		return model.InvalidPromotion("minPurchase must not be negative")
	}
	return nil
}

func applyPromotionRequest(p *model.Promotion, req *model.PromotionRequest, now time.Time) {
	p.Title = strings.TrimSpace(req.Title)
	p.Description = req.Description
	p.Type = req.Type
	p.Value = req.Value
	if p.Type == model.PromotionBOGO {
		p.Value = decimal.NullDecimal{}
	}
	p.Active = req.Active
	p.StartDate = strings.TrimSpace(req.StartDate)
	p.EndDate = strings.TrimSpace(req.EndDate)
	p.ApplicableItems = req.ApplicableItems
	if p.ApplicableItems == nil {
		p.ApplicableItems = []string{}
	}
	p.Code = req.Code
	p.MinPurchase = req.MinPurchase
	p.UsageLimit = req.UsageLimit
	p.UpdatedAt = now
}
