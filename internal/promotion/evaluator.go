// Package promotion decides which promotion applies to a menu item and what
// the item costs under it.
//
// The evaluation functions are pure: they take the current promotion list and
// the clock as arguments and never mutate them, so concurrent callers need no
// coordination. A malformed promotion is treated as not applying.
package promotion

import (
	"slices"
	"time"

	"cafe-site/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Eligible reports whether p is active, within its validity window at now, and
// scoped to itemID (or global).
func Eligible(p *model.Promotion, itemID string, now time.Time) bool {
	if p == nil || !p.Active {
		return false
	}
	if !InWindow(p.StartDate, p.EndDate, now) {
		return false
	}
	return p.Global() || slices.Contains(p.ApplicableItems, itemID)
}

// Live reports whether p is active and within its validity window at now,
// regardless of item scope.
func Live(p *model.Promotion, now time.Time) bool {
	return p != nil && p.Active && InWindow(p.StartDate, p.EndDate, now)
}

// FindApplicablePromotion returns the first promotion in list order that
// applies to itemID at now, or nil when none does.
//
// No ranking is performed: when several promotions qualify, the earliest in
// the list wins.
func FindApplicablePromotion(itemID string, promotions []model.Promotion, now time.Time) *model.Promotion {
	for i := range promotions {
		if Eligible(&promotions[i], itemID, now) {
			return &promotions[i]
		}
	}
	return nil
}

// CalculateDiscountedPrice returns the price of one unit under p. The boolean
// is false when there is no single-item discounted price: no promotion, a
// promotion missing its type or value, a bogo promotion, or a malformed one.
//
// The result is not rounded.
func CalculateDiscountedPrice(price decimal.Decimal, p *model.Promotion) (decimal.Decimal, bool) {
	if p == nil || p.Type == "" || !p.Value.Valid {
		return decimal.Decimal{}, false
	}

	value := p.Value.Decimal
	switch p.Type {
	case model.PromotionPercentage:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return decimal.Decimal{}, false
		}
		return price.Mul(decimal.NewFromInt(1).Sub(value.Div(hundred))), true

	case model.PromotionFixed:
		if value.IsNegative() {
			return decimal.Decimal{}, false
		}
		if value.GreaterThanOrEqual(price) {
			return decimal.Zero, true
		}
		return price.Sub(value), true

	default:
		// bogo is priced per line, unknown types never apply.
		return decimal.Decimal{}, false
	}
}
