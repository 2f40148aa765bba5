package events

import (
	"testing"

	"innkeeper/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSubscribePublish(t *testing.T) {
	bus := NewEventBus()

	var created []Event
	bus.Subscribe(BookingCreated, func(e Event) { created = append(created, e) })

	bus.Publish(Event{Type: BookingCreated, Booking: models.Booking{ID: 1}})
	bus.Publish(Event{Type: BookingCancelled, Booking: models.Booking{ID: 2}})

	assert.Len(t, created, 1)
	assert.Equal(t, int64(1), created[0].Booking.ID)
	assert.False(t, created[0].CreatedAt.IsZero())
}

func TestSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	var seen []string
	bus.SubscribeAll(func(e Event) { seen = append(seen, e.Type) })

	bus.Publish(Event{Type: BookingCreated})
	bus.Publish(Event{Type: BookingCancelled})
	bus.Publish(Event{Type: BookingUpgraded})

	assert.Equal(t, []string{BookingCreated, BookingCancelled, BookingUpgraded}, seen)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Publish(Event{Type: BookingUpgraded})
	})
}
