package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"accommodation_finder/internal/models"
)

type AmenityRepository struct {
	db *sql.DB
}

func NewAmenityRepository(db *sql.DB) *AmenityRepository {
	return &AmenityRepository{db: db}
}

var _ Amenities = (*AmenityRepository)(nil)

const (
	selectAmenitiesSQL = `SELECT id, name FROM amenities ORDER BY id`
	insertAmenitySQL   = `INSERT INTO amenities (name) VALUES (?)`
)

// List returns the whole amenity catalog.
func (r *AmenityRepository) List(ctx context.Context) ([]models.Amenity, error) {
	return r.scanMany(ctx, selectAmenitiesSQL)
}

// GetByIDs returns the amenities matching the given ids. Callers compare
// the result length against the request to detect unknown ids.
func (r *AmenityRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Amenity, error) {
	if len(ids) == 0 {
		return []models.Amenity{}, nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	q := `SELECT id, name FROM amenities WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY id`
	return r.scanMany(ctx, q, args...)
}

// Create inserts a new amenity tag and returns its ID. A name collision
// against the UNIQUE(name) constraint maps to ErrDuplicateAmenity.
func (r *AmenityRepository) Create(ctx context.Context, name string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertAmenitySQL, name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: amenities.name") {
			return 0, ErrDuplicateAmenity
		}
		return 0, fmt.Errorf("insert amenity %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for amenity %q: %w", name, err)
	}
	return int(lastID), nil
}

func (r *AmenityRepository) scanMany(ctx context.Context, query string, args ...any) ([]models.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select amenities: %w", err)
	}
	defer rows.Close()

	out := make([]models.Amenity, 0, 16)
	for rows.Next() {
		var am models.Amenity
		if err := rows.Scan(&am.ID, &am.Name); err != nil {
			return nil, err
		}
		out = append(out, am)
	}
	return out, rows.Err()
}
