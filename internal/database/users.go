package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"innkeeper/internal/models"
)

// UserFilter narrows and orders a user listing.
type UserFilter struct {
	Search string // matches name, email, or phone
	Sort   string // one of userSortColumns keys; default "-created_at"
}

var userSortColumns = map[string]string{
	"name":        "name",
	"email":       "email",
	"created_at":  "created_at",
	"-created_at": "created_at DESC",
}

// CreateUser inserts a new user. Returns ErrDuplicateEmail if the email is
// already taken.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Phone, u.Address, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// GetUser returns a user by ID or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns users matching the filter.
func (db *DB) ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query := `SELECT id, name, email, phone, address, created_at, updated_at FROM users`
	var conds []string
	var args []any

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, `(name LIKE ? OR email LIKE ? OR phone LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + sortClause(userSortColumns, filter.Sort, "created_at DESC")

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser updates an existing user. Returns ErrNotFound when no row has
// the user's ID and ErrDuplicateEmail on an email conflict.
func (db *DB) UpdateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, phone = ?, address = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, u.Phone, u.Address, now, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	u.UpdatedAt = now
	return nil
}

// DeleteUser removes a user; their bookings are cascade-deleted.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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

// sortClause resolves a requested sort key against a whitelist, falling back
// to the given default. Ordering is always an explicit parameter here, never
// ambient behavior of the query.
func sortClause(columns map[string]string, requested, fallback string) string {
	if clause, ok := columns[requested]; ok {
		return clause
	}
	return fallback
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
