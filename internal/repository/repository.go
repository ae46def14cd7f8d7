package repository

import (
	"context"

	"cafe-site/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MenuRepository defines the interface for menu item data access operations.
type MenuRepository interface {
	// List retrieves every menu item ordered by sort order then name.
	List(ctx context.Context) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item by its ID.
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)

	// GetByIDs retrieves multiple menu items by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error)

	// CountExisting returns how many of the given IDs exist.
	CountExisting(ctx context.Context, ids []string) (int, error)

	// CountByCategory returns how many menu items reference a category.
	CountByCategory(ctx context.Context, categoryID string) (int, error)

	Create(ctx context.Context, item *model.MenuItem) error

	// Update replaces a menu item. It reports false when the item does not exist.
	Update(ctx context.Context, item *model.MenuItem) (bool, error)

	// Delete removes a menu item. It reports false when the item does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PromotionRepository defines the interface for promotion data access operations.
type PromotionRepository interface {
	// List retrieves every promotion in creation order. The order is the
	// tie-break order used when several promotions apply to an item.
	List(ctx context.Context) ([]model.Promotion, error)
	GetByID(ctx context.Context, id string) (*model.Promotion, error)
	Create(ctx context.Context, promotion *model.Promotion) error
	Update(ctx context.Context, promotion *model.Promotion) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// GalleryRepository defines the interface for gallery data access operations.
type GalleryRepository interface {
	List(ctx context.Context) ([]model.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*model.GalleryItem, error)
	Create(ctx context.Context, item *model.GalleryItem) error
	Update(ctx context.Context, item *model.GalleryItem) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SettingsRepository defines the interface for site settings data access.
type SettingsRepository interface {
	// Get retrieves the saved settings, or nil when none were saved yet.
	Get(ctx context.Context) (*model.SiteSettings, error)
	Save(ctx context.Context, settings *model.SiteSettings) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List retrieves orders newest first with pagination support.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)
}
