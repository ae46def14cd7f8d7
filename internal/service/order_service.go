package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cafe-site/internal/model"
	"cafe-site/internal/promotion"
	"cafe-site/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo  repository.OrderRepository
	menuRepo   repository.MenuRepository
	promotions PromotionSnapshot
	now        func() time.Time
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	promotions PromotionSnapshot,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		menuRepo:   menuRepo,
		promotions: promotions,
		now:        time.Now,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder prices the requested items against the current promotions and
// stores the order and its items in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	// Validate request
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	// Load the menu items once per distinct id
	ids := make([]string, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			ids = append(ids, item.MenuItemID)
		}
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("item_count", len(ids)).Msg("failed to load menu items")
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	byID := make(map[string]model.MenuItem, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID] = m
	}
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			s.logger.Warn().Str("menu_item_id", id).Msg("order references unknown menu item")
			return nil, model.ErrMenuItemNotFound
		}
		if !m.Available {
			s.logger.Warn().Str("menu_item_id", id).Msg("order references unavailable menu item")
			return nil, model.ErrMenuItemUnavailable
		}
	}

	// Price every line against one consistent promotion list and clock
	now := s.now()
	promotions := s.promotions.Promotions()

	lines := make([]promotion.Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = promotion.PriceLine(byID[item.MenuItemID], item.Quantity, promotions, now)
	}
	subtotal, discount, total := promotion.Totals(lines)

	order := &model.Order{
		ID:           uuid.New(),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		Note:         req.Note,
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        total,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	orderItems := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		line := lines[i]
		orderItems[i] = model.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			Name:       byID[item.MenuItemID].Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			LineTotal:  line.Total.Round(4),
		}
		if line.DiscountedUnitPrice != nil {
			d := line.DiscountedUnitPrice.Round(4)
			orderItems[i].DiscountedUnitPrice = &d
		}
		if line.Promotion != nil {
			id := line.Promotion.ID
			orderItems[i].PromotionID = &id
		}
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(orderItems)).
		Str("total", order.Total.StringFixed(2)).
		Str("discount", order.Discount.StringFixed(2)).
		Msg("order created successfully")

	return &model.OrderResponse{
		Order: *order,
		Items: orderItems,
	}, nil
}

// GetByID retrieves an order by its ID with all items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrNotFound
	}

	return &model.OrderResponse{
		Order: *order,
		Items: items,
	}, nil
}

// List retrieves orders newest first with pagination.
func (s *orderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.ValidationError("order request is required")
	}

	if err := model.Validate(req); err != nil {
		return err
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return model.ValidationError("customerName must satisfy required")
	}

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("menu_item_id", item.MenuItemID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
