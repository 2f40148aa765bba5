package service

import (
	"context"
	"io"
	"testing"
	"time"

	"innkeeper/internal/database"
	"innkeeper/internal/events"
	"innkeeper/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockStore) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *mockStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockStore) CountConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (int, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut, excludeBookingID)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockStore) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockStore) ReassignBookingRoom(ctx context.Context, bookingID, newRoomID int64, totalPrice float64, checkIn, checkOut time.Time) error {
	return m.Called(ctx, bookingID, newRoomID, totalPrice, checkIn, checkOut).Error(0)
}

func (m *mockStore) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType models.RoomType) ([]models.Room, error) {
	args := m.Called(ctx, checkIn, checkOut, roomType)
	return args.Get(0).([]models.Room), args.Error(1)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(store Store) *BookingService {
	logger := zerolog.New(io.Discard)
	return NewBookingService(store, events.NewEventBus(), logger)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	room := &models.Room{ID: 2, HotelID: 1, RoomType: models.RoomTypeNormal, PricePerNight: 100, IsActive: true}

	t.Run("DerivesPriceFromNights", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUser", ctx, int64(1)).Return(user, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(room, nil).Once()
		store.On("CountConflicts", ctx, int64(2), day("2026-05-01"), day("2026-05-04"), int64(0)).Return(0, nil).Once()
		store.On("CreateBooking", ctx, mock.Anything).Return(nil).Once()

		svc := newTestService(store)
		booking, err := svc.Create(ctx, BookingRequest{
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
		})
		assert.NoError(t, err)
		assert.Equal(t, 300.0, booking.TotalPrice)
		assert.Equal(t, models.StatusPending, booking.Status)
		assert.NotEmpty(t, booking.Reference)
		store.AssertExpectations(t)
	})

	t.Run("ExplicitPriceWins", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUser", ctx, int64(1)).Return(user, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(room, nil).Once()
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Once()
		store.On("CreateBooking", ctx, mock.Anything).Return(nil).Once()

		price := 999.0
		svc := newTestService(store)
		booking, err := svc.Create(ctx, BookingRequest{
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
			TotalPrice:   &price,
		})
		assert.NoError(t, err)
		assert.Equal(t, 999.0, booking.TotalPrice)
	})

	t.Run("RejectsInvertedDates", func(t *testing.T) {
		store := new(mockStore)
		svc := newTestService(store)
		_, err := svc.Create(ctx, BookingRequest{
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-04"),
			CheckOutDate: day("2026-05-01"),
		})
		assert.EqualError(t, err, "Check-out date must be after check-in date")
		assert.True(t, IsValidation(err))
	})

	t.Run("RejectsEqualDates", func(t *testing.T) {
		store := new(mockStore)
		svc := newTestService(store)
		_, err := svc.Create(ctx, BookingRequest{
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-01"),
		})
		assert.EqualError(t, err, "Check-out date must be after check-in date")
	})

	t.Run("RejectsConflictingDates", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUser", ctx, int64(1)).Return(user, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(room, nil).Once()
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(1, nil).Once()

		svc := newTestService(store)
		_, err := svc.Create(ctx, BookingRequest{
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
		})
		assert.EqualError(t, err, "This room is not available for the selected dates")
	})

	t.Run("UnknownUserIs404", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUser", ctx, int64(99)).Return(nil, database.ErrNotFound).Once()

		svc := newTestService(store)
		_, err := svc.Create(ctx, BookingRequest{
			UserID:       99,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
		})
		assert.EqualError(t, err, "User not found")
		assert.True(t, IsNotFound(err))
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUser", ctx, int64(1)).Return(user, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(room, nil).Once()

		svc := newTestService(store)
		_, err := svc.Create(ctx, BookingRequest{
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
			Status:       "BOOKED",
		})
		assert.True(t, IsValidation(err))
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()
	room := &models.Room{ID: 2, RoomType: models.RoomTypeNormal, PricePerNight: 100, IsActive: true}

	existing := func() *models.Booking {
		return &models.Booking{
			ID:           7,
			UserID:       1,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
			Status:       models.StatusPending,
			TotalPrice:   300,
		}
	}

	t.Run("KeepsStoredPrice", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(7)).Return(existing(), nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(room, nil).Once()
		store.On("CountConflicts", ctx, int64(2), day("2026-05-01"), day("2026-05-06"), int64(7)).Return(0, nil).Once()
		store.On("UpdateBooking", ctx, mock.Anything).Return(nil).Once()

		svc := newTestService(store)
		booking, err := svc.Update(ctx, 7, BookingRequest{CheckOutDate: day("2026-05-06")})
		assert.NoError(t, err)
		// Stored price is never silently recomputed.
		assert.Equal(t, 300.0, booking.TotalPrice)
	})

	t.Run("ZeroPriceForcesRecompute", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(7)).Return(existing(), nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(room, nil).Once()
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Once()
		store.On("UpdateBooking", ctx, mock.Anything).Return(nil).Once()

		zero := 0.0
		svc := newTestService(store)
		booking, err := svc.Update(ctx, 7, BookingRequest{
			CheckOutDate: day("2026-05-06"),
			TotalPrice:   &zero,
		})
		assert.NoError(t, err)
		assert.Equal(t, 500.0, booking.TotalPrice)
	})

	t.Run("RejectsBackwardTransition", func(t *testing.T) {
		b := existing()
		b.Status = models.StatusConfirmed
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(7)).Return(b, nil).Once()

		svc := newTestService(store)
		_, err := svc.Update(ctx, 7, BookingRequest{Status: models.StatusPending})
		assert.True(t, IsValidation(err))
	})

	t.Run("UnknownBookingIs404", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(404)).Return(nil, database.ErrNotFound).Once()

		svc := newTestService(store)
		_, err := svc.Update(ctx, 404, BookingRequest{})
		assert.EqualError(t, err, "Booking not found")
		assert.True(t, IsNotFound(err))
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("CancelsWithConfirmation", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(5)).Return(&models.Booking{ID: 5, Status: models.StatusConfirmed}, nil).Once()
		store.On("UpdateBookingStatus", ctx, int64(5), models.StatusCancelled).Return(nil).Once()

		svc := newTestService(store)
		booking, err := svc.Cancel(ctx, 5, true)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, booking.Status)
		store.AssertExpectations(t)
	})

	t.Run("RequiresConfirmation", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(5)).Return(&models.Booking{ID: 5, Status: models.StatusPending}, nil).Once()

		svc := newTestService(store)
		_, err := svc.Cancel(ctx, 5, false)
		assert.EqualError(t, err, "Please confirm cancellation")
	})

	t.Run("RejectsAlreadyCancelled", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(5)).Return(&models.Booking{ID: 5, Status: models.StatusCancelled}, nil).Once()

		svc := newTestService(store)
		_, err := svc.Cancel(ctx, 5, true)
		assert.EqualError(t, err, "This booking is already cancelled")
	})
}

func TestUpgradeRoom(t *testing.T) {
	ctx := context.Background()

	confirmed := func() *models.Booking {
		return &models.Booking{
			ID:           9,
			RoomID:       2,
			CheckInDate:  day("2026-05-01"),
			CheckOutDate: day("2026-05-04"),
			Status:       models.StatusConfirmed,
			TotalPrice:   300,
		}
	}
	smallRoom := &models.Room{ID: 2, RoomType: models.RoomTypeSmall, PricePerNight: 100, IsActive: true}
	largeRoom := &models.Room{ID: 3, RoomType: models.RoomTypeLarge, PricePerNight: 250, IsActive: true}

	t.Run("UpgradesAndReprices", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(9)).Return(confirmed(), nil).Once()
		store.On("GetRoom", ctx, int64(3)).Return(largeRoom, nil).Once()
		store.On("CountConflicts", ctx, int64(3), day("2026-05-01"), day("2026-05-04"), int64(9)).Return(0, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(smallRoom, nil).Once()
		store.On("ReassignBookingRoom", ctx, int64(9), int64(3), 750.0, day("2026-05-01"), day("2026-05-04")).Return(nil).Once()

		svc := newTestService(store)
		booking, err := svc.UpgradeRoom(ctx, 9, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), booking.RoomID)
		assert.Equal(t, 750.0, booking.TotalPrice)
		store.AssertExpectations(t)
	})

	t.Run("OnlyConfirmedBookings", func(t *testing.T) {
		b := confirmed()
		b.Status = models.StatusPending
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(9)).Return(b, nil).Once()

		svc := newTestService(store)
		_, err := svc.UpgradeRoom(ctx, 9, 3)
		assert.EqualError(t, err, "Only confirmed bookings can be upgraded")
	})

	t.Run("RejectsInactiveRoom", func(t *testing.T) {
		inactive := &models.Room{ID: 3, RoomType: models.RoomTypeLarge, PricePerNight: 250, IsActive: false}
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(9)).Return(confirmed(), nil).Once()
		store.On("GetRoom", ctx, int64(3)).Return(inactive, nil).Once()

		svc := newTestService(store)
		_, err := svc.UpgradeRoom(ctx, 9, 3)
		assert.EqualError(t, err, "The selected room is not active")
	})

	t.Run("RejectsOccupiedRoom", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(9)).Return(confirmed(), nil).Once()
		store.On("GetRoom", ctx, int64(3)).Return(largeRoom, nil).Once()
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(1, nil).Once()

		svc := newTestService(store)
		_, err := svc.UpgradeRoom(ctx, 9, 3)
		assert.EqualError(t, err, "The selected room is not available for your dates")
	})

	t.Run("RejectsDowngrade", func(t *testing.T) {
		b := confirmed()
		b.RoomID = 3
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(9)).Return(b, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(smallRoom, nil).Once()
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Once()
		store.On("GetRoom", ctx, int64(3)).Return(largeRoom, nil).Once()

		svc := newTestService(store)
		_, err := svc.UpgradeRoom(ctx, 9, 2)
		assert.EqualError(t, err, "The selected room is not an upgrade from your current room")
	})

	t.Run("RejectsSameTier", func(t *testing.T) {
		otherSmall := &models.Room{ID: 4, RoomType: models.RoomTypeSmall, PricePerNight: 90, IsActive: true}
		store := new(mockStore)
		store.On("GetBooking", ctx, int64(9)).Return(confirmed(), nil).Once()
		store.On("GetRoom", ctx, int64(4)).Return(otherSmall, nil).Once()
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Once()
		store.On("GetRoom", ctx, int64(2)).Return(smallRoom, nil).Once()

		svc := newTestService(store)
		_, err := svc.UpgradeRoom(ctx, 9, 4)
		assert.EqualError(t, err, "The selected room is not an upgrade from your current room")
	})
}
