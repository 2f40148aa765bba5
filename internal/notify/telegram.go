// Package notify pushes booking lifecycle notifications to a Telegram chat.
package notify

import (
	"fmt"

	"innkeeper/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the part of the Telegram bot API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier forwards booking events to a configured chat, typically a
// staff channel.
type TelegramNotifier struct {
	bot    Sender
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier connects to the Telegram bot API with the given token.
func NewTelegramNotifier(token string, chatID int64, logger zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger.With().Str("component", "notify").Logger(),
	}, nil
}

// Subscribe attaches the notifier to all booking lifecycle events.
func (n *TelegramNotifier) Subscribe(bus *events.EventBus) {
	bus.SubscribeAll(n.handle)
}

func (n *TelegramNotifier) handle(event events.Event) {
	text := FormatEvent(event)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Str("event", event.Type).Msg("failed to send notification")
		return
	}
	n.logger.Debug().Str("event", event.Type).Int64("booking_id", event.Booking.ID).Msg("notification sent")
}

// FormatEvent renders a booking event as a Telegram message.
func FormatEvent(event events.Event) string {
	b := event.Booking
	var title string
	switch event.Type {
	case events.BookingCreated:
		title = "New booking"
	case events.BookingCancelled:
		title = "Booking cancelled"
	case events.BookingUpgraded:
		title = "Booking upgraded"
	default:
		title = event.Type
	}

	return fmt.Sprintf(`*%s* #%d
Reference: %s
Room: %d
Dates: %s to %s (%d nights)
Status: %s
Total: %.2f`,
		title,
		b.ID,
		b.Reference,
		b.RoomID,
		b.CheckInDate.Format("2006-01-02"),
		b.CheckOutDate.Format("2006-01-02"),
		b.Nights(),
		b.Status.Display(),
		b.TotalPrice,
	)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)
