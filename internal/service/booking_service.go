package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"innkeeper/internal/database"
	"innkeeper/internal/events"
	"innkeeper/internal/metrics"
	"innkeeper/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is the persistence surface the booking service depends on.
// *database.DB implements it.
type Store interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CountConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (int, error)
	CreateBooking(ctx context.Context, b *models.Booking) error
	UpdateBooking(ctx context.Context, b *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error
	ReassignBookingRoom(ctx context.Context, bookingID, newRoomID int64, totalPrice float64, checkIn, checkOut time.Time) error
	AvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType models.RoomType) ([]models.Room, error)
}

// Error messages surfaced to API callers.
const (
	msgCheckOutAfterCheckIn = "Check-out date must be after check-in date"
	msgRoomNotAvailable     = "This room is not available for the selected dates"
	msgAlreadyCancelled     = "This booking is already cancelled"
	msgConfirmCancellation  = "Please confirm cancellation"
	msgOnlyConfirmedUpgrade = "Only confirmed bookings can be upgraded"
	msgNotAnUpgrade         = "The selected room is not an upgrade from your current room"
	msgUpgradeNotAvailable  = "The selected room is not available for your dates"
	msgRoomNotActive        = "The selected room is not active"
	msgDatesRequired        = "Both check_in and check_out dates are required"
	msgInvalidDateFormat    = "Invalid date format. Use YYYY-MM-DD"
)

// BookingService implements the booking lifecycle: create, update, cancel,
// and room upgrade, plus the availability queries backing them.
type BookingService struct {
	store  Store
	bus    *events.EventBus
	logger zerolog.Logger
}

func NewBookingService(store Store, bus *events.EventBus, logger zerolog.Logger) *BookingService {
	return &BookingService{
		store:  store,
		bus:    bus,
		logger: logger.With().Str("component", "booking").Logger(),
	}
}

// BookingRequest carries booking input from the API boundary. TotalPrice is
// three-valued: nil keeps/derives the stored price, zero forces recomputation
// from the room's nightly price, positive overrides it.
type BookingRequest struct {
	UserID       int64
	RoomID       int64
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       models.BookingStatus
	TotalPrice   *float64
	Notes        string
}

// Create validates and persists a new booking. The room must have no
// CONFIRMED booking overlapping the requested interval; tentative and
// cancelled bookings never reserve inventory.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	checkIn := models.DateOnly(req.CheckInDate)
	checkOut := models.DateOnly(req.CheckOutDate)
	if !checkIn.Before(checkOut) {
		return nil, validation(msgCheckOutAfterCheckIn)
	}

	if _, err := s.store.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, err
	}

	room, err := s.store.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Room not found")
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, validation(fmt.Sprintf("Invalid status %q", req.Status))
	}

	conflicts, err := s.store.CountConflicts(ctx, room.ID, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, validation(msgRoomNotAvailable)
	}

	totalPrice, err := resolvePrice(req.TotalPrice, 0, checkIn, checkOut, room.PricePerNight)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference:    uuid.NewString(),
		UserID:       req.UserID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       status,
		TotalPrice:   totalPrice,
		Notes:        req.Notes,
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, database.ErrRoomNotAvailable) {
			return nil, validation(msgRoomNotAvailable)
		}
		return nil, err
	}

	metrics.IncBookingCreated(string(booking.Status))
	s.publish(events.BookingCreated, booking)
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("reference", booking.Reference).
		Int64("room_id", booking.RoomID).
		Str("status", string(booking.Status)).
		Float64("total_price", booking.TotalPrice).
		Msg("booking created")

	return booking, nil
}

// Update rewrites an existing booking. The availability check excludes the
// booking itself so shrinking or shifting a stay within its own interval is
// always allowed. A price persisted once is never silently recomputed; the
// caller must clear it (TotalPrice = 0) to pick up a changed nightly rate.
func (s *BookingService) Update(ctx context.Context, id int64, req BookingRequest) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Booking not found")
		}
		return nil, err
	}

	if req.UserID > 0 && req.UserID != booking.UserID {
		if _, err := s.store.GetUser(ctx, req.UserID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, notFound("User not found")
			}
			return nil, err
		}
		booking.UserID = req.UserID
	}
	if req.RoomID > 0 {
		booking.RoomID = req.RoomID
	}
	if !req.CheckInDate.IsZero() {
		booking.CheckInDate = models.DateOnly(req.CheckInDate)
	}
	if !req.CheckOutDate.IsZero() {
		booking.CheckOutDate = models.DateOnly(req.CheckOutDate)
	}
	if req.Notes != "" {
		booking.Notes = req.Notes
	}

	if !booking.CheckInDate.Before(booking.CheckOutDate) {
		return nil, validation(msgCheckOutAfterCheckIn)
	}

	if req.Status != "" {
		if !models.ValidStatus(req.Status) {
			return nil, validation(fmt.Sprintf("Invalid status %q", req.Status))
		}
		if !booking.Status.CanTransitionTo(req.Status) {
			return nil, validation(fmt.Sprintf("Cannot change status from %s to %s", booking.Status, req.Status))
		}
		booking.Status = req.Status
	}

	room, err := s.store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Room not found")
		}
		return nil, err
	}

	conflicts, err := s.store.CountConflicts(ctx, room.ID, booking.CheckInDate, booking.CheckOutDate, booking.ID)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, validation(msgRoomNotAvailable)
	}

	booking.TotalPrice, err = resolvePrice(req.TotalPrice, booking.TotalPrice,
		booking.CheckInDate, booking.CheckOutDate, room.PricePerNight)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateBooking(ctx, booking); err != nil {
		if errors.Is(err, database.ErrRoomNotAvailable) {
			return nil, validation(msgRoomNotAvailable)
		}
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("status", string(booking.Status)).
		Msg("booking updated")

	return booking, nil
}

// Cancel sets the booking to CANCELLED. The caller must confirm explicitly,
// and a booking that is already cancelled is rejected rather than silently
// accepted. Freed capacity is immediately visible to availability checks.
func (s *BookingService) Cancel(ctx context.Context, id int64, confirm bool) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Booking not found")
		}
		return nil, err
	}

	if booking.Status == models.StatusCancelled {
		return nil, validation(msgAlreadyCancelled)
	}
	if !confirm {
		return nil, validation(msgConfirmCancellation)
	}

	if err := s.store.UpdateBookingStatus(ctx, booking.ID, models.StatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCancelled

	metrics.IncBookingCancelled()
	s.publish(events.BookingCancelled, booking)
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("reference", booking.Reference).
		Msg("booking cancelled")

	return booking, nil
}

// UpgradeRoom moves a CONFIRMED booking to a strictly higher-tier room that
// is active and free over the booking's own date range, recomputing the total
// price from the new room's nightly rate.
func (s *BookingService) UpgradeRoom(ctx context.Context, bookingID, newRoomID int64) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Booking not found")
		}
		return nil, err
	}

	if booking.Status != models.StatusConfirmed {
		return nil, validation(msgOnlyConfirmedUpgrade)
	}

	newRoom, err := s.store.GetRoom(ctx, newRoomID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Room not found")
		}
		return nil, err
	}
	if !newRoom.IsActive {
		return nil, validation(msgRoomNotActive)
	}

	// The booking itself is excluded: it occupies the old room, and its own
	// row must not block the move when old and new room coincide in a filter.
	conflicts, err := s.store.CountConflicts(ctx, newRoom.ID, booking.CheckInDate, booking.CheckOutDate, booking.ID)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, validation(msgUpgradeNotAvailable)
	}

	currentRoom, err := s.store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		return nil, err
	}
	if !currentRoom.RoomType.IsUpgradeTo(newRoom.RoomType) {
		return nil, validation(msgNotAnUpgrade)
	}

	totalPrice := float64(booking.Nights()) * newRoom.PricePerNight
	if err := s.store.ReassignBookingRoom(ctx, booking.ID, newRoom.ID, totalPrice, booking.CheckInDate, booking.CheckOutDate); err != nil {
		if errors.Is(err, database.ErrRoomNotAvailable) {
			return nil, validation(msgUpgradeNotAvailable)
		}
		return nil, err
	}

	booking.RoomID = newRoom.ID
	booking.TotalPrice = totalPrice

	metrics.IncBookingUpgraded()
	s.publish(events.BookingUpgraded, booking)
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("old_room_id", currentRoom.ID).
		Int64("new_room_id", newRoom.ID).
		Float64("total_price", totalPrice).
		Msg("booking room upgraded")

	return booking, nil
}

func (s *BookingService) publish(eventType string, booking *models.Booking) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, Booking: *booking})
}

// resolvePrice applies the three-valued price rule. requested nil keeps the
// stored price (deriving it when nothing is stored yet), zero recomputes from
// the nightly rate, positive overrides.
func resolvePrice(requested *float64, stored float64, checkIn, checkOut time.Time, pricePerNight float64) (float64, error) {
	if requested != nil {
		if *requested < 0 {
			return 0, validation("Total price must not be negative")
		}
		if *requested > 0 {
			return *requested, nil
		}
		return float64(models.Nights(checkIn, checkOut)) * pricePerNight, nil
	}
	if stored > 0 {
		return stored, nil
	}
	return float64(models.Nights(checkIn, checkOut)) * pricePerNight, nil
}
