package notify

import (
	"io"
	"testing"
	"time"

	"innkeeper/internal/events"
	"innkeeper/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testBooking() models.Booking {
	return models.Booking{
		ID:           42,
		Reference:    "ref-42",
		RoomID:       7,
		CheckInDate:  day("2026-09-01"),
		CheckOutDate: day("2026-09-04"),
		Status:       models.StatusConfirmed,
		TotalPrice:   300,
	}
}

func TestFormatEvent(t *testing.T) {
	text := FormatEvent(events.Event{Type: events.BookingCreated, Booking: testBooking()})

	assert.Contains(t, text, "New booking")
	assert.Contains(t, text, "#42")
	assert.Contains(t, text, "ref-42")
	assert.Contains(t, text, "2026-09-01 to 2026-09-04 (3 nights)")
	assert.Contains(t, text, "Confirmed")
	assert.Contains(t, text, "300.00")

	text = FormatEvent(events.Event{Type: events.BookingCancelled, Booking: testBooking()})
	assert.Contains(t, text, "Booking cancelled")

	text = FormatEvent(events.Event{Type: events.BookingUpgraded, Booking: testBooking()})
	assert.Contains(t, text, "Booking upgraded")
}

func TestNotifierSendsOnEvents(t *testing.T) {
	sender := &fakeSender{}
	notifier := &TelegramNotifier{bot: sender, chatID: 1001, logger: zerolog.New(io.Discard)}

	bus := events.NewEventBus()
	notifier.Subscribe(bus)

	bus.Publish(events.Event{Type: events.BookingCreated, Booking: testBooking()})
	bus.Publish(events.Event{Type: events.BookingCancelled, Booking: testBooking()})

	require.Len(t, sender.sent, 2)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(1001), msg.ChatID)
	assert.Contains(t, msg.Text, "New booking")
}
