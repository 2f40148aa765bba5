package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"innkeeper/internal/database"
	"innkeeper/internal/models"
)

// Presentation types live here: display-only fields (type names, related
// entity names, point-in-time availability) are computed at this boundary
// and never stored.

// RoomResponse is a room with its display fields.
type RoomResponse struct {
	ID              int64           `json:"id"`
	HotelID         int64           `json:"hotel_id"`
	HotelName       string          `json:"hotel_name"`
	RoomNumber      string          `json:"room_number"`
	RoomType        models.RoomType `json:"room_type"`
	RoomTypeDisplay string          `json:"room_type_display"`
	PricePerNight   float64         `json:"price_per_night"`
	Capacity        int             `json:"capacity"`
	Description     string          `json:"description,omitempty"`
	IsActive        bool            `json:"is_active"`
	IsAvailable     bool            `json:"is_available"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BookingResponse is a booking with its display fields.
type BookingResponse struct {
	ID            int64                `json:"id"`
	Reference     string               `json:"reference"`
	UserID        int64                `json:"user_id"`
	UserName      string               `json:"user_name"`
	RoomID        int64                `json:"room_id"`
	RoomInfo      string               `json:"room_info"`
	CheckInDate   string               `json:"check_in_date"`
	CheckOutDate  string               `json:"check_out_date"`
	Status        models.BookingStatus `json:"status"`
	StatusDisplay string               `json:"status_display"`
	TotalPrice    float64              `json:"total_price"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// HotelListItem is the compact hotel listing representation.
type HotelListItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	Image     string  `json:"image,omitempty"`
	RoomCount int     `json:"room_count"`
}

// HotelDetail is a hotel with its full room list.
type HotelDetail struct {
	models.Hotel
	Rooms []RoomResponse `json:"rooms"`
}

// roomResponses builds display representations for a set of rooms, resolving
// hotel names in one pass and computing today's availability per room.
func (s *HTTPServer) roomResponses(ctx context.Context, rooms []models.Room) ([]RoomResponse, error) {
	hotelNames := make(map[int64]string)
	for _, room := range rooms {
		if _, ok := hotelNames[room.HotelID]; ok {
			continue
		}
		hotel, err := s.db.GetHotel(ctx, room.HotelID)
		if err != nil {
			return nil, err
		}
		hotelNames[room.HotelID] = hotel.Name
	}

	today := time.Now()
	responses := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		available, err := s.bookings.RoomAvailableOn(ctx, room, today)
		if err != nil {
			return nil, err
		}
		responses = append(responses, RoomResponse{
			ID:              room.ID,
			HotelID:         room.HotelID,
			HotelName:       hotelNames[room.HotelID],
			RoomNumber:      room.RoomNumber,
			RoomType:        room.RoomType,
			RoomTypeDisplay: room.RoomType.Display(),
			PricePerNight:   room.PricePerNight,
			Capacity:        room.Capacity,
			Description:     room.Description,
			IsActive:        room.IsActive,
			IsAvailable:     available,
			CreatedAt:       room.CreatedAt,
			UpdatedAt:       room.UpdatedAt,
		})
	}
	return responses, nil
}

// roomInfo formats the human-readable room summary used in booking
// responses, e.g. "Seaside Inn - Room 101 (Large)".
func roomInfo(hotelName string, room *models.Room) string {
	return fmt.Sprintf("%s - Room %s (%s)", hotelName, room.RoomNumber, room.RoomType.Display())
}

func (s *HTTPServer) bookingResponse(ctx context.Context, b *models.Booking) (*BookingResponse, error) {
	resp := &BookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		CheckInDate:   b.CheckInDate.Format("2006-01-02"),
		CheckOutDate:  b.CheckOutDate.Format("2006-01-02"),
		Status:        b.Status,
		StatusDisplay: b.Status.Display(),
		TotalPrice:    b.TotalPrice,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	user, err := s.db.GetUser(ctx, b.UserID)
	if err == nil {
		resp.UserName = user.Name
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	room, err := s.db.GetRoom(ctx, b.RoomID)
	if err == nil {
		hotel, err := s.db.GetHotel(ctx, room.HotelID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		hotelName := ""
		if hotel != nil {
			hotelName = hotel.Name
		}
		resp.RoomInfo = roomInfo(hotelName, room)
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	return resp, nil
}

func (s *HTTPServer) bookingResponses(ctx context.Context, bookings []models.Booking) ([]BookingResponse, error) {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp, err := s.bookingResponse(ctx, &bookings[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
