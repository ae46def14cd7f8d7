package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a sellable entry on the cafe menu.
type MenuItem struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CategoryID  string          `json:"categoryId" db:"category_id"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Available   bool            `json:"available" db:"available"`
	Featured    bool            `json:"featured" db:"featured"`
	SortOrder   int             `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// MenuItemRequest is the admin payload for creating or replacing a menu item.
type MenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	Available   *bool           `json:"available"`
	Featured    bool            `json:"featured"`
	SortOrder   int             `json:"sortOrder" validate:"gte=0"`
}

// MenuItemView is a menu item as presented to customers, with the promotion
// currently applied to it.
type MenuItemView struct {
	MenuItem
	CategoryName    string           `json:"categoryName,omitempty"`
	Promotion       *PromotionBadge  `json:"promotion,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
}

// PromotionBadge is the customer-facing summary of an applied promotion.
type PromotionBadge struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Type  PromotionType   `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Menu sort keys accepted by MenuFilter.Sort.
const (
	MenuSortDefault   = "default"
	MenuSortName      = "name"
	MenuSortPriceAsc  = "price_asc"
	MenuSortPriceDesc = "price_desc"
	MenuSortNewest    = "newest"
)

// MenuFilter narrows and orders a menu listing.
type MenuFilter struct {
	// Category matches either a category id or slug.
	Category      string
	Search        string
	AvailableOnly bool
	FeaturedOnly  bool
	Sort          string
}
