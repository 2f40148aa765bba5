package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"innkeeper/internal/models"
)

// HotelFilter narrows and orders a hotel listing.
type HotelFilter struct {
	Search string // matches name or address
	Sort   string // one of hotelSortColumns keys; default "name"
}

var hotelSortColumns = map[string]string{
	"name":    "name",
	"rating":  "rating",
	"-rating": "rating DESC",
}

// CreateHotel inserts a new hotel. Used by seeds and tests; the public API
// exposes hotels read-only.
func (db *DB) CreateHotel(ctx context.Context, h *models.Hotel) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO hotels (name, address, description, image, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.Name, h.Address, h.Description, h.Image, h.Rating, now, now)
	if err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	h.ID = id
	h.CreatedAt = now
	h.UpdatedAt = now
	return nil
}

// GetHotel returns a hotel by ID or ErrNotFound.
func (db *DB) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	var h models.Hotel
	err := db.QueryRowContext(ctx, `
		SELECT id, name, address, description, image, rating, created_at, updated_at
		FROM hotels WHERE id = ?`, id,
	).Scan(&h.ID, &h.Name, &h.Address, &h.Description, &h.Image, &h.Rating, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHotels returns hotels matching the filter.
func (db *DB) ListHotels(ctx context.Context, filter HotelFilter) ([]models.Hotel, error) {
	query := `SELECT id, name, address, description, image, rating, created_at, updated_at FROM hotels`
	var args []any

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += ` WHERE (name LIKE ? OR address LIKE ?)`
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY " + sortClause(hotelSortColumns, filter.Sort, "name")

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Description, &h.Image, &h.Rating, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// CountHotelRooms returns the number of rooms belonging to a hotel.
func (db *DB) CountHotelRooms(ctx context.Context, hotelID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE hotel_id = ?`, hotelID,
	).Scan(&count)
	return count, err
}

// DeleteHotel removes a hotel; its rooms (and their bookings) are
// cascade-deleted.
func (db *DB) DeleteHotel(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
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
