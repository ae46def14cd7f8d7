package model

import "time"

// GalleryType distinguishes photos from videos.
type GalleryType string

const (
	GalleryPhoto GalleryType = "photo"
	GalleryVideo GalleryType = "video"
)

// GalleryItem is a photo or video shown on the public gallery page.
type GalleryItem struct {
	ID         string      `json:"id" db:"id"`
	Type       GalleryType `json:"type" db:"type"`
	URL        string      `json:"url" db:"url"`
	StorageKey string      `json:"-" db:"storage_key"`
	Caption    string      `json:"caption" db:"caption"`
	SortOrder  int         `json:"sortOrder" db:"sort_order"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}

// GalleryUpdateRequest is the admin payload for editing gallery metadata.
type GalleryUpdateRequest struct {
	Caption   string `json:"caption" validate:"max=500"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

// GalleryUpload describes a media file received from the admin dashboard.
type GalleryUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Caption     string
	SortOrder   int
}
