package models

import "time"

// Package categories for travel packages.
const (
	CategoryAdventure  = "Adventure"
	CategoryRelaxation = "Relaxation"
	CategoryCultural   = "Cultural"
	CategoryWildlife   = "Wildlife"
	CategoryLuxury     = "Luxury"
)

// PackageCategories lists all known categories in catalog order.
var PackageCategories = []string{
	CategoryAdventure,
	CategoryRelaxation,
	CategoryCultural,
	CategoryWildlife,
	CategoryLuxury,
}

// ValidCategory reports whether c is a known package category.
func ValidCategory(c string) bool {
	for _, known := range PackageCategories {
		if c == known {
			return true
		}
	}
	return false
}

// TravelPackage is an independent catalog entity; it is not linked to bookings.
type TravelPackage struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Destination   string    `json:"destination"`
	Category      string    `json:"category"`
	DurationDays  int       `json:"duration_days"`
	Price         float64   `json:"price"`
	Activities    string    `json:"activities,omitempty"` // comma-separated list
	AvailableFrom time.Time `json:"available_from"`
	AvailableTo   time.Time `json:"available_to"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
