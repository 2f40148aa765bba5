package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Display returns the human-readable name for the status.
// Presentation-only; never stored.
func (s BookingStatus) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// CanTransitionTo reports whether the state machine allows moving from s to
// target. PENDING may become CONFIRMED or CANCELLED, CONFIRMED may become
// CANCELLED; CANCELLED is terminal. A no-op transition to the same status is
// always allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCancelled
	}
	return false
}

// Booking references one user and one room for a half-open date interval
// [check_in, check_out). Only CONFIRMED bookings reserve room inventory.
type Booking struct {
	ID           int64         `json:"id"`
	Reference    string        `json:"reference"`
	UserID       int64         `json:"user_id"`
	RoomID       int64         `json:"room_id"`
	CheckInDate  time.Time     `json:"check_in_date"`
	CheckOutDate time.Time     `json:"check_out_date"`
	Status       BookingStatus `json:"status"`
	TotalPrice   float64       `json:"total_price"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap: aStart < bEnd && bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overlaps reports whether the booking's interval overlaps [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

// ContainsDay reports whether the booking's interval covers the given day.
// Equivalent to overlapping the one-day window [day, day+1); this is the same
// primitive that backs the range check, so point-in-time and range availability
// cannot drift apart.
func (b *Booking) ContainsDay(day time.Time) bool {
	d := DateOnly(day)
	return b.Overlaps(d, d.AddDate(0, 0, 1))
}

// Nights returns the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// Nights returns the number of whole days in [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// DateOnly truncates t to midnight UTC. All booking dates are day-granular.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
