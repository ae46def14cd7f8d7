package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cafe-site/internal/model"
	"cafe-site/internal/promotion"
	"cafe-site/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menuRepo     repository.MenuRepository
	categoryRepo repository.CategoryRepository
	promotions   PromotionSnapshot
	now          func() time.Time
	logger       zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(
	menuRepo repository.MenuRepository,
	categoryRepo repository.CategoryRepository,
	promotions PromotionSnapshot,
	logger zerolog.Logger,
) MenuService {
	return &menuService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
		promotions:   promotions,
		now:          time.Now,
		logger:       logger.With().Str("service", "menu").Logger(),
	}
}

// List returns the filtered, sorted menu with promotions applied.
func (s *menuService) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItemView, error) {
	sortKey := filter.Sort
	if sortKey == "" {
		sortKey = model.MenuSortDefault
	}
	less, ok := menuSorts[sortKey]
	if !ok {
		return nil, model.ValidationError(fmt.Sprintf("unknown sort %q", filter.Sort))
	}

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu items")
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make(map[string]string, len(categories))
	categoryID := ""
	for _, c := range categories {
		names[c.ID] = c.Name
		if filter.Category != "" && (c.ID == filter.Category || strings.EqualFold(c.Slug, filter.Category)) {
			categoryID = c.ID
		}
	}
	if filter.Category != "" && categoryID == "" {
		return []model.MenuItemView{}, nil
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		if filter.AvailableOnly && !item.Available {
			continue
		}
		if filter.FeaturedOnly && !item.Featured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return less(&matched[i], &matched[j])
	})

	promotions := s.promotions.Promotions()
	now := s.now()

	views := make([]model.MenuItemView, len(matched))
	for i, item := range matched {
		views[i] = decorate(item, names[item.CategoryID], promotions, now)
	}

	s.logger.Debug().
		Int("count", len(views)).
		Str("category", filter.Category).
		Str("sort", sortKey).
		Msg("menu listed")

	return views, nil
}

// Get returns one menu item with its promotion applied.
func (s *menuService) Get(ctx context.Context, id string) (*model.MenuItemView, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrNotFound
	}

	category, err := s.categoryRepo.GetByID(ctx, item.CategoryID)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", item.CategoryID).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	categoryName := ""
	if category != nil {
		categoryName = category.Name
	}

	view := decorate(*item, categoryName, s.promotions.Promotions(), s.now())
	return &view, nil
}

// Create validates and stores a new menu item.
func (s *menuService) Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	now := s.now()
	item := &model.MenuItem{ID: uuid.NewString(), CreatedAt: now}
	applyMenuRequest(item, req, now)

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().Str("menu_item_id", item.ID).Str("name", item.Name).Msg("menu item created")
	return item, nil
}

// Update replaces a menu item.
func (s *menuService) Update(ctx context.Context, id string, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	item := &model.MenuItem{ID: id}
	applyMenuRequest(item, req, s.now())

	ok, err := s.menuRepo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	s.logger.Info().Str("menu_item_id", id).Msg("menu item updated")
	return item, nil
}

// Delete removes a menu item. Promotions that still list its id simply never
// match it again.
func (s *menuService) Delete(ctx context.Context, id string) error {
	ok, err := s.menuRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}

	s.logger.Info().Str("menu_item_id", id).Msg("menu item deleted")
	return nil
}

func (s *menuService) validateRequest(ctx context.Context, req *model.MenuItemRequest) error {
	if req == nil {
		return model.ValidationError("request body is required")
	}
	if err := model.Validate(req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return model.ValidationError("price must not be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return model.ValidationError(fmt.Sprintf("unknown category %q", req.CategoryID))
	}
	return nil
}

func applyMenuRequest(item *model.MenuItem, req *model.MenuItemRequest, now time.Time) {
	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.Price = req.Price.Round(2)
	item.CategoryID = req.CategoryID
	item.ImageURL = req.ImageURL
	item.Available = req.Available == nil || *req.Available
	item.Featured = req.Featured
	item.SortOrder = req.SortOrder
	item.UpdatedAt = now
}

// decorate attaches the promotion that applies to item at now. Discounted
// prices are rounded to cents for display.
func decorate(item model.MenuItem, categoryName string, promotions []model.Promotion, now time.Time) model.MenuItemView {
	view := model.MenuItemView{MenuItem: item, CategoryName: categoryName}

	p := promotion.FindApplicablePromotion(item.ID, promotions, now)
	if p == nil {
		return view
	}

	view.Promotion = p.Badge()
	if discounted, ok := promotion.CalculateDiscountedPrice(item.Price, p); ok {
		discounted = discounted.Round(2)
		view.DiscountedPrice = &discounted
	}
	return view
}

var menuSorts = map[string]func(a, b *model.MenuItem) bool{
	model.MenuSortDefault: func(a, b *model.MenuItem) bool {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	model.MenuSortName: func(a, b *model.MenuItem) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	model.MenuSortPriceAsc: func(a, b *model.MenuItem) bool {
		return a.Price.LessThan(b.Price)
	},
	model.MenuSortPriceDesc: func(a, b *model.MenuItem) bool {
		return a.Price.GreaterThan(b.Price)
	},
	model.MenuSortNewest: func(a, b *model.MenuItem) bool {
		return a.CreatedAt.After(b.CreatedAt)
	},
}
