package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"innkeeper/internal/models"
)

// RoomFilter narrows and orders a room listing.
type RoomFilter struct {
	HotelID  int64           // 0 means any hotel
	RoomType models.RoomType // empty means any type
	Capacity int             // 0 means any capacity
	Search   string          // matches room_number or description
	Sort     string          // one of roomSortColumns keys; default hotel then room_number
}

var roomSortColumns = map[string]string{
	"hotel":       "hotel_id, room_number",
	"room_number": "room_number",
	"price":       "price_per_night",
	"-price":      "price_per_night DESC",
	"capacity":    "capacity",
}

const roomColumns = `id, hotel_id, room_number, room_type, price_per_night,
	capacity, description, is_active, created_at, updated_at`

func scanRoom(scanner interface{ Scan(...any) error }) (*models.Room, error) {
	var r models.Room
	var description sql.NullString
	err := scanner.Scan(&r.ID, &r.HotelID, &r.RoomNumber, &r.RoomType, &r.PricePerNight,
		&r.Capacity, &description, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Description = description.String
	return &r, nil
}

// CreateRoom inserts a new room. Used by seeds and tests; the public API
// exposes rooms read-only. Returns ErrDuplicateRoomNumber when the
// (hotel, room_number) pair is taken.
func (db *DB) CreateRoom(ctx context.Context, r *models.Room) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO rooms (hotel_id, room_number, room_type, price_per_night,
			capacity, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.HotelID, r.RoomNumber, r.RoomType, r.PricePerNight,
		r.Capacity, r.Description, r.IsActive, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRoomNumber
		}
		return fmt.Errorf("insert room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// GetRoom returns a room by ID or ErrNotFound.
func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms returns active rooms matching the filter.
func (db *DB) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms`
	conds := []string{"is_active = 1"}
	var args []any

	if filter.HotelID > 0 {
		conds = append(conds, "hotel_id = ?")
		args = append(args, filter.HotelID)
	}
	if filter.RoomType != "" {
		conds = append(conds, "room_type = ?")
		args = append(args, filter.RoomType)
	}
	if filter.Capacity > 0 {
		conds = append(conds, "capacity = ?")
		args = append(args, filter.Capacity)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, "(room_number LIKE ? OR description LIKE ?)")
		args = append(args, pattern, pattern)
	}

	query += " WHERE " + strings.Join(conds, " AND ")
	query += " ORDER BY " + sortClause(roomSortColumns, filter.Sort, "hotel_id, room_number")

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRooms(rows)
}

// ListHotelRooms returns all rooms of a hotel, active or not.
func (db *DB) ListHotelRooms(ctx context.Context, hotelID int64) ([]models.Room, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE hotel_id = ? ORDER BY room_number`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRooms(rows)
}

// AvailableRooms returns active rooms with no CONFIRMED booking overlapping
// the half-open interval [checkIn, checkOut), optionally narrowed by room
// type. The overlap test is existing.check_in < checkOut AND
// existing.check_out > checkIn.
func (db *DB) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType models.RoomType) ([]models.Room, error) {
	query := `
		SELECT ` + roomColumns + ` FROM rooms
		WHERE is_active = 1
		  AND id NOT IN (
			SELECT room_id FROM bookings
			WHERE status = ? AND check_in_date < ? AND check_out_date > ?
		  )`
	args := []any{models.StatusConfirmed, checkOut, checkIn}

	if roomType != "" {
		query += " AND room_type = ?"
		args = append(args, roomType)
	}
	query += " ORDER BY hotel_id, room_number"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRooms(rows)
}

func collectRooms(rows *sql.Rows) ([]models.Room, error) {
	var rooms []models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

// DeleteRoom removes a room; its bookings are cascade-deleted.
func (db *DB) DeleteRoom(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
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
