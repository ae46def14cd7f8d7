package model

import "time"

// Category groups menu items.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CategoryRequest is the admin payload for creating or renaming a category.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required,max=80"`
	Slug      string `json:"slug" validate:"omitempty,max=80"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}
