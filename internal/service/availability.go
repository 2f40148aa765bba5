package service

import (
	"context"
	"time"

	"innkeeper/internal/models"
)

// AvailableRooms validates the raw query parameters and returns all active
// rooms with no CONFIRMED booking overlapping [check_in, check_out),
// optionally narrowed by room type. Unknown room types are ignored rather
// than rejected.
func (s *BookingService) AvailableRooms(ctx context.Context, checkInStr, checkOutStr, roomTypeStr string) ([]models.Room, error) {
	if checkInStr == "" || checkOutStr == "" {
		return nil, validation(msgDatesRequired)
	}

	checkIn, err := time.Parse("2006-01-02", checkInStr)
	if err != nil {
		return nil, validation(msgInvalidDateFormat)
	}
	checkOut, err := time.Parse("2006-01-02", checkOutStr)
	if err != nil {
		return nil, validation(msgInvalidDateFormat)
	}

	checkIn = models.DateOnly(checkIn)
	checkOut = models.DateOnly(checkOut)
	if !checkIn.Before(checkOut) {
		return nil, validation(msgCheckOutAfterCheckIn)
	}

	roomType := models.RoomType(roomTypeStr)
	if !models.ValidRoomType(roomType) {
		roomType = ""
	}

	return s.store.AvailableRooms(ctx, checkIn, checkOut, roomType)
}

// RoomAvailableOn reports point-in-time availability: the room is active and
// no CONFIRMED booking covers the given day. This is the range check over the
// one-day window [day, day+1), so the two policies share one overlap
// primitive.
func (s *BookingService) RoomAvailableOn(ctx context.Context, room *models.Room, day time.Time) (bool, error) {
	if !room.IsActive {
		return false, nil
	}
	d := models.DateOnly(day)
	conflicts, err := s.store.CountConflicts(ctx, room.ID, d, d.AddDate(0, 0, 1), 0)
	if err != nil {
		return false, err
	}
	return conflicts == 0, nil
}
