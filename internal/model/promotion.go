package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionType selects how a promotion changes an item's price.
type PromotionType string

const (
	PromotionPercentage PromotionType = "percentage"
	PromotionFixed      PromotionType = "fixed"
	// PromotionBOGO is buy-one-get-one; it has no single-item price form.
	PromotionBOGO PromotionType = "bogo"
)

// Promotion is an administrator-defined discount rule.
//
// StartDate and EndDate are kept as entered (YYYY-MM-DD or RFC 3339) so that a
// record with an unparseable window can be carried around and simply never
// match.
type Promotion struct {
	ID              string              `json:"id" db:"id"`
	Title           string              `json:"title" db:"title"`
	Description     string              `json:"description" db:"description"`
	Type            PromotionType       `json:"type" db:"type"`
	Value           decimal.NullDecimal `json:"value" db:"value"`
	Active          bool                `json:"active" db:"active"`
	StartDate       string              `json:"startDate" db:"start_date"`
	EndDate         string              `json:"endDate" db:"end_date"`
	ApplicableItems []string            `json:"applicableItems,omitempty" db:"applicable_items"`
	Code            *string             `json:"code,omitempty" db:"code"`
	MinPurchase     decimal.NullDecimal `json:"minPurchase" db:"min_purchase"`
	UsageLimit      *int                `json:"usageLimit,omitempty" db:"usage_limit"`
	UsageCount      int                 `json:"usageCount" db:"usage_count"`
	CreatedAt       time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" db:"updated_at"`
}

// Global reports whether the promotion applies to every menu item.
func (p *Promotion) Global() bool {
	return len(p.ApplicableItems) == 0
}

// Badge returns the customer-facing summary of the promotion.
func (p *Promotion) Badge() *PromotionBadge {
	return &PromotionBadge{
		ID:    p.ID,
		Title: p.Title,
		Type:  p.Type,
		Value: p.Value.Decimal,
	}
}

// PromotionRequest is the admin payload for creating or replacing a promotion.
type PromotionRequest struct {
	Title           string              `json:"title" validate:"required,max=120"`
	Description     string              `json:"description" validate:"max=1000"`
	Type            PromotionType       `json:"type" validate:"required,oneof=percentage fixed bogo"`
	Value           decimal.NullDecimal `json:"value"`
	Active          bool                `json:"active"`
	StartDate       string              `json:"startDate" validate:"required"`
	EndDate         string              `json:"endDate" validate:"required"`
	ApplicableItems []string            `json:"applicableItems" validate:"omitempty,dive,required"`
	Code            *string             `json:"code" validate:"omitempty,max=32"`
	MinPurchase     decimal.NullDecimal `json:"minPurchase"`
	UsageLimit      *int                `json:"usageLimit" validate:"omitempty,gte=0"`
}
