package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"cafe-site/internal/model"
	"cafe-site/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	menuRepo     repository.MenuRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	menuRepo repository.MenuRepository,
	logger zerolog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		menuRepo:     menuRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	category := &model.Category{ID: uuid.NewString(), CreatedAt: time.Now()}
	if err := s.apply(ctx, category, req); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Str("category_id", category.ID).Str("slug", category.Slug).Msg("category created")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req *model.CategoryRequest) (*model.Category, error) {
	category := &model.Category{ID: id}
	if err := s.apply(ctx, category, req); err != nil {
		return nil, err
	}

	ok, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	s.logger.Info().Str("category_id", id).Msg("category updated")
	return category, nil
}

// Delete removes a category that no menu item references.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	count, err := s.menuRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		s.logger.Warn().Str("category_id", id).Int("menu_items", count).Msg("refusing to delete category in use")
		return model.ErrCategoryInUse
	}

	ok, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}

	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

// apply validates req and copies it onto category. The slug is derived from
// the name when omitted and must be unique.
func (s *categoryService) apply(ctx context.Context, category *model.Category, req *model.CategoryRequest) error {
	if req == nil {
		return model.ValidationError("request body is required")
	}
	if err := model.Validate(req); err != nil {
		return err
	}

	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return model.ValidationError("slug must contain at least one letter or digit")
	}

	existing, err := s.categoryRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range existing {
		if c.Slug == slug && c.ID != category.ID {
			return model.ValidationError(fmt.Sprintf("slug %q is already in use", slug))
		}
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = slug
	category.SortOrder = req.SortOrder
	return nil
}

// Slugify lowercases s and joins its letter and digit runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
