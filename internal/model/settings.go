package model

import "time"

// OpeningHours is one row of the opening hours table.
type OpeningHours struct {
	Day   string `json:"day" validate:"required"`
	Open  string `json:"open" validate:"omitempty,datetime=15:04"`
	Close string `json:"close" validate:"omitempty,datetime=15:04"`
}

// SiteSettings holds the editable site-wide content.
type SiteSettings struct {
	CafeName     string         `json:"cafeName" validate:"required,max=120"`
	Tagline      string         `json:"tagline" validate:"max=200"`
	Address      string         `json:"address" validate:"max=300"`
	Phone        string         `json:"phone" validate:"max=40"`
	Email        string         `json:"email" validate:"omitempty,email"`
	OpeningHours []OpeningHours `json:"openingHours" validate:"dive"`
	InstagramURL string         `json:"instagramUrl" validate:"omitempty,url"`
	FacebookURL  string         `json:"facebookUrl" validate:"omitempty,url"`
	Announcement string         `json:"announcement" validate:"max=500"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// DefaultSiteSettings is served until an administrator saves settings.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		CafeName:     "Our Cafe",
		OpeningHours: []OpeningHours{},
	}
}
