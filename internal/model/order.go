package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order placed through the website.
type Order struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	CustomerName string          `json:"customerName" db:"customer_name"`
	Phone        string          `json:"phone,omitempty" db:"phone"`
	Note         string          `json:"note,omitempty" db:"note"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount     decimal.Decimal `json:"discount" db:"discount"`
	Total        decimal.Decimal `json:"total" db:"total"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a priced line item in an order.
type OrderItem struct {
	ID                  uuid.UUID        `json:"-" db:"id"`
	OrderID             uuid.UUID        `json:"-" db:"order_id"`
	MenuItemID          string           `json:"menuItemId" db:"menu_item_id"`
	Name                string           `json:"name" db:"name"`
	Quantity            int              `json:"quantity" db:"quantity"`
	UnitPrice           decimal.Decimal  `json:"unitPrice" db:"unit_price"`
	DiscountedUnitPrice *decimal.Decimal `json:"discountedUnitPrice,omitempty" db:"discounted_unit_price"`
	PromotionID         *string          `json:"promotionId,omitempty" db:"promotion_id"`
	LineTotal           decimal.Decimal  `json:"lineTotal" db:"line_total"`
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	CustomerName string             `json:"customerName" validate:"required,max=120"`
	Phone        string             `json:"phone" validate:"max=40"`
	Note         string             `json:"note" validate:"max=500"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	MenuItemID string `json:"menuItemId" validate:"required"`
	Quantity   int    `json:"quantity"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	Items []OrderItem `json:"items"`
}
