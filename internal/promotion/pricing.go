package promotion

import (
	"time"

	"cafe-site/internal/model"

	"github.com/shopspring/decimal"
)

// Line is the priced form of one order line.
type Line struct {
	UnitPrice           decimal.Decimal
	DiscountedUnitPrice *decimal.Decimal
	Promotion           *model.Promotion
	Quantity            int
	// Subtotal is the line at base price, Total what the customer pays.
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// Discount returns how much the promotion took off the line.
func (l Line) Discount() decimal.Decimal {
	return l.Subtotal.Sub(l.Total)
}

// PriceLine prices quantity units of item under the promotion that applies to
// it at now.
//
// Percentage and fixed promotions reduce every unit. A bogo promotion makes
// every second unit free, which is the only place bogo changes a price.
func PriceLine(item model.MenuItem, quantity int, promotions []model.Promotion, now time.Time) Line {
	qty := decimal.NewFromInt(int64(quantity))
	line := Line{
		UnitPrice: item.Price,
		Quantity:  quantity,
		Subtotal:  item.Price.Mul(qty),
	}
	line.Total = line.Subtotal

	p := FindApplicablePromotion(item.ID, promotions, now)
	if p == nil {
		return line
	}

	if p.Type == model.PromotionBOGO {
		paid := quantity - quantity/2
		line.Promotion = p
		line.Total = item.Price.Mul(decimal.NewFromInt(int64(paid)))
		return line
	}

	discounted, ok := CalculateDiscountedPrice(item.Price, p)
	if !ok {
		return line
	}
	line.Promotion = p
	line.DiscountedUnitPrice = &discounted
	line.Total = discounted.Mul(qty)
	return line
}

// Totals sums priced lines into the order subtotal, discount and total.
// Amounts are rounded to cents here, at the order boundary.
func Totals(lines []Line) (subtotal, discount, total decimal.Decimal) {
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
		total = total.Add(l.Total)
	}
	subtotal = subtotal.Round(2)
	total = total.Round(2)
	discount = subtotal.Sub(total)
	return subtotal, discount, total
}
