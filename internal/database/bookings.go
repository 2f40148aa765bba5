package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"innkeeper/internal/models"
)

// BookingFilter narrows and orders a booking listing.
type BookingFilter struct {
	UserID int64                // 0 means any user
	RoomID int64                // 0 means any room
	Status models.BookingStatus // empty means any status
	Sort   string               // one of bookingSortColumns keys; default "-created_at"
}

var bookingSortColumns = map[string]string{
	"check_in":    "check_in_date",
	"created_at":  "created_at",
	"-created_at": "created_at DESC",
}

const bookingColumns = `id, reference, user_id, room_id, check_in_date,
	check_out_date, status, total_price, notes, created_at, updated_at`

func scanBooking(scanner interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var notes sql.NullString
	err := scanner.Scan(&b.ID, &b.Reference, &b.UserID, &b.RoomID, &b.CheckInDate,
		&b.CheckOutDate, &b.Status, &b.TotalPrice, &notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Notes = notes.String
	return &b, nil
}

// CountConflicts counts CONFIRMED bookings on the room whose interval
// overlaps [checkIn, checkOut), excluding the booking with
// excludeBookingID (0 excludes nothing). This is the range availability
// check: a room is free iff the count is zero.
func (db *DB) CountConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (int, error) {
	return countConflicts(ctx, db.DB, roomID, checkIn, checkOut, excludeBookingID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func countConflicts(ctx context.Context, q querier, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE room_id = ? AND status = ?
		  AND check_in_date < ? AND check_out_date > ?
		  AND id != ?`,
		roomID, models.StatusConfirmed, checkOut, checkIn, excludeBookingID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count conflicts: %w", err)
	}
	return count, nil
}

// CreateBooking inserts a booking inside a transaction, re-running the
// conflict check before the write when the booking is CONFIRMED. Returns
// ErrRoomNotAvailable if a conflicting CONFIRMED booking exists by commit
// time.
func (db *DB) CreateBooking(ctx context.Context, b *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if b.Status == models.StatusConfirmed {
		conflicts, err := countConflicts(ctx, tx, b.RoomID, b.CheckInDate, b.CheckOutDate, 0)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrRoomNotAvailable
		}
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (reference, user_id, room_id, check_in_date,
			check_out_date, status, total_price, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Reference, b.UserID, b.RoomID, b.CheckInDate,
		b.CheckOutDate, b.Status, b.TotalPrice, b.Notes, now, now)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// GetBooking returns a booking by ID or ErrNotFound.
func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns bookings matching the filter.
func (db *DB) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var conds []string
	var args []any

	if filter.UserID > 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.RoomID > 0 {
		conds = append(conds, "room_id = ?")
		args = append(args, filter.RoomID)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + sortClause(bookingSortColumns, filter.Sort, "created_at DESC")

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateBooking rewrites the booking's dates, status, price, and notes inside
// a transaction, re-running the conflict check (excluding the booking itself)
// when the resulting status is CONFIRMED.
func (db *DB) UpdateBooking(ctx context.Context, b *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if b.Status == models.StatusConfirmed {
		conflicts, err := countConflicts(ctx, tx, b.RoomID, b.CheckInDate, b.CheckOutDate, b.ID)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrRoomNotAvailable
		}
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET user_id = ?, room_id = ?, check_in_date = ?, check_out_date = ?,
		    status = ?, total_price = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		b.UserID, b.RoomID, b.CheckInDate, b.CheckOutDate,
		b.Status, b.TotalPrice, b.Notes, now, b.ID)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	b.UpdatedAt = now
	return nil
}

// UpdateBookingStatus sets only the booking's status.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	result, err := db.ExecContext(ctx, `
		UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReassignBookingRoom moves a booking to a new room with a recomputed total
// price, re-checking inside the transaction that the new room has no
// CONFIRMED booking overlapping [checkIn, checkOut) other than the booking
// being moved.
func (db *DB) ReassignBookingRoom(ctx context.Context, bookingID, newRoomID int64, totalPrice float64, checkIn, checkOut time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	conflicts, err := countConflicts(ctx, tx, newRoomID, checkIn, checkOut, bookingID)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrRoomNotAvailable
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings SET room_id = ?, total_price = ?, updated_at = ?
		WHERE id = ?`,
		newRoomID, totalPrice, time.Now().UTC(), bookingID)
	if err != nil {
		return fmt.Errorf("reassign booking room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking.
func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
