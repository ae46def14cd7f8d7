package service

import (
	"context"
	"io"

	"cafe-site/internal/model"

	"github.com/google/uuid"
)

// PromotionSnapshot is the in-memory promotion list used for pricing.
type PromotionSnapshot interface {
	// Promotions returns the current list. Callers must not modify it.
	Promotions() []model.Promotion

	// Refresh reloads the list from storage.
	Refresh(ctx context.Context) error
}

// MenuService defines operations for the cafe menu.
type MenuService interface {
	// List returns the filtered, sorted menu with promotions applied.
	List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItemView, error)

	// Get returns one menu item with its promotion applied.
	Get(ctx context.Context, id string) (*model.MenuItemView, error)

	Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error)
	Update(ctx context.Context, id string, req *model.MenuItemRequest) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

// CategoryService defines operations for menu categories.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id string, req *model.CategoryRequest) (*model.Category, error)

	// Delete removes a category that no menu item references.
	Delete(ctx context.Context, id string) error
}

// PromotionService defines operations for promotion management.
type PromotionService interface {
	// List returns every promotion, for the admin dashboard.
	List(ctx context.Context) ([]model.Promotion, error)

	// Active returns the promotions that are live right now.
	Active(ctx context.Context) ([]model.Promotion, error)

	Get(ctx context.Context, id string) (*model.Promotion, error)
	Create(ctx context.Context, req *model.PromotionRequest) (*model.Promotion, error)
	Update(ctx context.Context, id string, req *model.PromotionRequest) (*model.Promotion, error)
	Delete(ctx context.Context, id string) error
}

// GalleryService defines operations for the photo and video gallery.
type GalleryService interface {
	// List returns gallery items, optionally only those of one type.
	List(ctx context.Context, typ model.GalleryType) ([]model.GalleryItem, error)

	// Upload stores the media file and records it in the gallery.
	Upload(ctx context.Context, upload model.GalleryUpload, body io.Reader) (*model.GalleryItem, error)

	Update(ctx context.Context, id string, req *model.GalleryUpdateRequest) (*model.GalleryItem, error)

	// Delete removes the media file, then the gallery record.
	Delete(ctx context.Context, id string) error
}

// SettingsService defines operations for site-wide settings.
type SettingsService interface {
	// Get returns the saved settings, or the defaults when none were saved.
	Get(ctx context.Context) (*model.SiteSettings, error)
	Save(ctx context.Context, settings *model.SiteSettings) (*model.SiteSettings, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder prices and stores a new order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves orders newest first, for the admin dashboard.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)
}
