package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"innkeeper/internal/models"
)

// PackageFilter narrows and orders a travel package listing.
type PackageFilter struct {
	Category string // empty means any category
	Search   string // matches title or destination
	Sort     string // one of packageSortColumns keys; default "-created_at"
}

var packageSortColumns = map[string]string{
	"title":       "title",
	"price":       "price",
	"-price":      "price DESC",
	"created_at":  "created_at",
	"-created_at": "created_at DESC",
}

const packageColumns = `id, title, description, destination, category, duration_days,
	price, activities, available_from, available_to, created_at, updated_at`

func scanPackage(scanner interface{ Scan(...any) error }) (*models.TravelPackage, error) {
	var p models.TravelPackage
	var description, activities sql.NullString
	err := scanner.Scan(&p.ID, &p.Title, &description, &p.Destination, &p.Category,
		&p.DurationDays, &p.Price, &activities, &p.AvailableFrom, &p.AvailableTo,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Activities = activities.String
	return &p, nil
}

// CreatePackage inserts a new travel package.
func (db *DB) CreatePackage(ctx context.Context, p *models.TravelPackage) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO travel_packages (title, description, destination, category,
			duration_days, price, activities, available_from, available_to,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Destination, p.Category,
		p.DurationDays, p.Price, p.Activities, p.AvailableFrom, p.AvailableTo,
		now, now)
	if err != nil {
		return fmt.Errorf("insert package: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetPackage returns a travel package by ID or ErrNotFound.
func (db *DB) GetPackage(ctx context.Context, id int64) (*models.TravelPackage, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM travel_packages WHERE id = ?`, id)
	p, err := scanPackage(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPackages returns travel packages matching the filter.
func (db *DB) ListPackages(ctx context.Context, filter PackageFilter) ([]models.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages`
	var conds []string
	var args []any

	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, "(title LIKE ? OR destination LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + sortClause(packageSortColumns, filter.Sort, "created_at DESC")

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.TravelPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, *p)
	}
	return packages, rows.Err()
}

// UpdatePackage updates an existing travel package.
func (db *DB) UpdatePackage(ctx context.Context, p *models.TravelPackage) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		UPDATE travel_packages
		SET title = ?, description = ?, destination = ?, category = ?,
		    duration_days = ?, price = ?, activities = ?, available_from = ?,
		    available_to = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.Destination, p.Category,
		p.DurationDays, p.Price, p.Activities, p.AvailableFrom,
		p.AvailableTo, now, p.ID)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	p.UpdatedAt = now
	return nil
}

// DeletePackage removes a travel package.
func (db *DB) DeletePackage(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM travel_packages WHERE id = ?`, id)
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

// ReplacePackages deletes all travel packages and inserts the given set in a
// single transaction. Used by the seed utility to regenerate the catalog.
func (db *DB) ReplacePackages(ctx context.Context, packages []models.TravelPackage) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM travel_packages`); err != nil {
		return fmt.Errorf("delete packages: %w", err)
	}

	now := time.Now().UTC()
	for i := range packages {
		p := &packages[i]
		result, err := tx.ExecContext(ctx, `
			INSERT INTO travel_packages (title, description, destination, category,
				duration_days, price, activities, available_from, available_to,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Title, p.Description, p.Destination, p.Category,
			p.DurationDays, p.Price, p.Activities, p.AvailableFrom, p.AvailableTo,
			now, now)
		if err != nil {
			return fmt.Errorf("insert package %q: %w", p.Title, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last id: %w", err)
		}
		p.ID = id
		p.CreatedAt = now
		p.UpdatedAt = now
	}

	return tx.Commit()
}
