package models

import "time"

// RoomType classifies a room by size tier.
type RoomType string

const (
	RoomTypeSmall  RoomType = "SMALL"
	RoomTypeNormal RoomType = "NORMAL"
	RoomTypeLarge  RoomType = "LARGE"
)

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypeSmall, RoomTypeNormal, RoomTypeLarge:
		return true
	}
	return false
}

// Display returns the human-readable name for the room type.
// Presentation-only; never stored.
func (t RoomType) Display() string {
	switch t {
	case RoomTypeSmall:
		return "Small"
	case RoomTypeNormal:
		return "Normal"
	case RoomTypeLarge:
		return "Large"
	}
	return string(t)
}

// IsUpgradeTo reports whether moving from type t to target counts as an upgrade.
// Only specific forward transitions are permitted: SMALL may move to NORMAL or
// LARGE, NORMAL may move to LARGE. Every other pair, including same-type moves,
// is not an upgrade.
func (t RoomType) IsUpgradeTo(target RoomType) bool {
	switch t {
	case RoomTypeSmall:
		return target == RoomTypeNormal || target == RoomTypeLarge
	case RoomTypeNormal:
		return target == RoomTypeLarge
	}
	return false
}

// Room belongs to exactly one hotel; (hotel_id, room_number) is unique.
type Room struct {
	ID            int64     `json:"id"`
	HotelID       int64     `json:"hotel_id"`
	RoomNumber    string    `json:"room_number"`
	RoomType      RoomType  `json:"room_type"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
