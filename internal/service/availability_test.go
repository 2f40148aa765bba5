package service

import (
	"context"
	"testing"

	"innkeeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAvailableRooms(t *testing.T) {
	ctx := context.Background()
	free := []models.Room{{ID: 1, RoomType: models.RoomTypeNormal, IsActive: true}}

	t.Run("ReturnsStoreResults", func(t *testing.T) {
		store := new(mockStore)
		store.On("AvailableRooms", ctx, day("2026-05-01"), day("2026-05-04"), models.RoomTypeNormal).Return(free, nil).Once()

		svc := newTestService(store)
		rooms, err := svc.AvailableRooms(ctx, "2026-05-01", "2026-05-04", "NORMAL")
		assert.NoError(t, err)
		assert.Equal(t, free, rooms)
		store.AssertExpectations(t)
	})

	t.Run("RequiresBothDates", func(t *testing.T) {
		svc := newTestService(new(mockStore))

		_, err := svc.AvailableRooms(ctx, "", "2026-05-04", "")
		assert.EqualError(t, err, "Both check_in and check_out dates are required")

		_, err = svc.AvailableRooms(ctx, "2026-05-01", "", "")
		assert.EqualError(t, err, "Both check_in and check_out dates are required")
	})

	t.Run("RejectsBadDateFormat", func(t *testing.T) {
		svc := newTestService(new(mockStore))
		_, err := svc.AvailableRooms(ctx, "05/01/2026", "2026-05-04", "")
		assert.EqualError(t, err, "Invalid date format. Use YYYY-MM-DD")
		assert.True(t, IsValidation(err))
	})

	t.Run("RejectsInvertedRange", func(t *testing.T) {
		svc := newTestService(new(mockStore))
		_, err := svc.AvailableRooms(ctx, "2026-05-04", "2026-05-01", "")
		assert.EqualError(t, err, "Check-out date must be after check-in date")
	})

	t.Run("IgnoresUnknownRoomType", func(t *testing.T) {
		store := new(mockStore)
		store.On("AvailableRooms", ctx, day("2026-05-01"), day("2026-05-04"), models.RoomType("")).Return(free, nil).Once()

		svc := newTestService(store)
		_, err := svc.AvailableRooms(ctx, "2026-05-01", "2026-05-04", "PENTHOUSE")
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestRoomAvailableOn(t *testing.T) {
	ctx := context.Background()
	room := &models.Room{ID: 1, IsActive: true}

	t.Run("FreeDay", func(t *testing.T) {
		store := new(mockStore)
		store.On("CountConflicts", ctx, int64(1), day("2026-05-01"), day("2026-05-02"), int64(0)).Return(0, nil).Once()

		svc := newTestService(store)
		ok, err := svc.RoomAvailableOn(ctx, room, day("2026-05-01"))
		assert.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
	})

	t.Run("OccupiedDay", func(t *testing.T) {
		store := new(mockStore)
		store.On("CountConflicts", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(1, nil).Once()

		svc := newTestService(store)
		ok, err := svc.RoomAvailableOn(ctx, room, day("2026-05-01"))
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("InactiveRoomNeverAvailable", func(t *testing.T) {
		svc := newTestService(new(mockStore))
		ok, err := svc.RoomAvailableOn(ctx, &models.Room{ID: 2, IsActive: false}, day("2026-05-01"))
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
