package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"accommodation_finder/internal/models"
)

type AccommodationRepository struct {
	db *sql.DB
}

func NewAccommodationRepository(db *sql.DB) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

var _ Accommodations = (*AccommodationRepository)(nil)

const (
	selectAccommodationsSQL = `
		SELECT id, title, address, price, distance_from_university, contact_email, contact_phone, broker_id
		FROM accommodations ORDER BY id
	`
	selectAccommodationByIDSQL = `
		SELECT id, title, address, price, distance_from_university, contact_email, contact_phone, broker_id
		FROM accommodations WHERE id = ?
	`
	selectAccommodationsByBrokerSQL = `
		SELECT id, title, address, price, distance_from_university, contact_email, contact_phone, broker_id
		FROM accommodations WHERE broker_id = ? ORDER BY id
	`
	insertAccommodationSQL = `
		INSERT INTO accommodations (title, address, price, distance_from_university, contact_email, contact_phone, broker_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	updateAccommodationSQL = `
		UPDATE accommodations
		SET title = ?, address = ?, price = ?, distance_from_university = ?, contact_email = ?, contact_phone = ?
		WHERE id = ?
	`
	deleteAccommodationSQL = `DELETE FROM accommodations WHERE id = ?`

	selectAmenitiesForListingSQL = `
		SELECT a.id, a.name FROM amenities a
		JOIN accommodation_amenities aa ON aa.amenity_id = a.id
		WHERE aa.accommodation_id = ? ORDER BY a.id
	`
	insertListingAmenitySQL  = `INSERT INTO accommodation_amenities (accommodation_id, amenity_id) VALUES (?, ?)`
	deleteListingAmenitySQL  = `DELETE FROM accommodation_amenities WHERE accommodation_id = ?`
	selectPhotosSQL          = `SELECT id, photo_url, accommodation_id FROM photos WHERE accommodation_id = ? ORDER BY id`
	insertPhotoSQL           = `INSERT INTO photos (photo_url, accommodation_id) VALUES (?, ?)`
	deletePhotosByListingSQL = `DELETE FROM photos WHERE accommodation_id = ?`
	deletePhotoSQL           = `DELETE FROM photos WHERE id = ? AND accommodation_id = ?`
	existsAccommodationSQL   = `SELECT EXISTS(SELECT 1 FROM accommodations WHERE id = ?)`
)

// querier is satisfied by both *sql.DB and *sql.Tx, so relation loading
// helpers can run inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// List returns all listings with their amenities and photos, ordered by id.
func (r *AccommodationRepository) List(ctx context.Context) ([]models.Accommodation, error) {
	return r.queryListings(ctx, selectAccommodationsSQL)
}

// ListByBroker returns the broker's listings; an unknown broker id
// simply yields an empty slice.
func (r *AccommodationRepository) ListByBroker(ctx context.Context, brokerID int) ([]models.Accommodation, error) {
	return r.queryListings(ctx, selectAccommodationsByBrokerSQL, brokerID)
}

func (r *AccommodationRepository) queryListings(ctx context.Context, query string, args ...any) ([]models.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select accommodations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Accommodation, 0, 16)
	for rows.Next() {
		var a models.Accommodation
		if err := scanAccommodation(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := loadRelations(ctx, r.db, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetByID loads a single listing with amenities and photos.
func (r *AccommodationRepository) GetByID(ctx context.Context, id int) (*models.Accommodation, error) {
	var a models.Accommodation
	row := r.db.QueryRowContext(ctx, selectAccommodationByIDSQL, id)
	if err := row.Scan(&a.ID, &a.Title, &a.Address, &a.Price, &a.DistanceFromUniversity,
		&a.ContactEmail, &a.ContactPhone, &a.BrokerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select accommodation %d: %w", id, err)
	}
	if err := loadRelations(ctx, r.db, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the listing row, its amenity links and its photos in
// one transaction.
func (r *AccommodationRepository) Create(ctx context.Context, a models.Accommodation) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertAccommodationSQL,
		a.Title, a.Address, a.Price, a.DistanceFromUniversity, a.ContactEmail, a.ContactPhone, a.BrokerID)
	if err != nil {
		return 0, fmt.Errorf("insert accommodation: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get accommodation insert id: %w", err)
	}
	id := int(lastID)

	if err := insertAmenityLinks(ctx, tx, id, a.Amenities); err != nil {
		return 0, err
	}
	for _, p := range a.Photos {
		if _, err := tx.ExecContext(ctx, insertPhotoSQL, p.PhotoURL, id); err != nil {
			return 0, fmt.Errorf("insert photo for accommodation %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create tx: %w", err)
	}
	return id, nil
}

// Update replaces the scalar columns and the whole amenity set in one
// transaction. Broker and photos are left untouched.
func (r *AccommodationRepository) Update(ctx context.Context, a models.Accommodation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateAccommodationSQL,
		a.Title, a.Address, a.Price, a.DistanceFromUniversity, a.ContactEmail, a.ContactPhone, a.ID)
	if err != nil {
		return fmt.Errorf("update accommodation %d: %w", a.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for accommodation %d: %w", a.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	// Full replace of the amenity set, not a merge.
	if _, err := tx.ExecContext(ctx, deleteListingAmenitySQL, a.ID); err != nil {
		return fmt.Errorf("clear amenities for accommodation %d: %w", a.ID, err)
	}
	if err := insertAmenityLinks(ctx, tx, a.ID, a.Amenities); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update tx: %w", err)
	}
	return nil
}

// Delete removes the listing together with its amenity links and its
// photos. Photos have no independent lifecycle, so the cascade is
// written out explicitly rather than left to the schema.
func (r *AccommodationRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deletePhotosByListingSQL, id); err != nil {
		return fmt.Errorf("cascade photos for accommodation %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, deleteListingAmenitySQL, id); err != nil {
		return fmt.Errorf("clear amenities for accommodation %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, deleteAccommodationSQL, id)
	if err != nil {
		return fmt.Errorf("delete accommodation %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for accommodation %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

// AddPhoto attaches a new photo to an existing listing.
func (r *AccommodationRepository) AddPhoto(ctx context.Context, accommodationID int, photoURL string) (int, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsAccommodationSQL, accommodationID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check accommodation %d: %w", accommodationID, err)
	}
	if !exists {
		return 0, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, insertPhotoSQL, photoURL, accommodationID)
	if err != nil {
		return 0, fmt.Errorf("insert photo for accommodation %d: %w", accommodationID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get photo insert id: %w", err)
	}
	return int(lastID), nil
}

// DeletePhoto removes one photo. The accommodation id is part of the
// predicate, so a photo can never be deleted through another listing.
func (r *AccommodationRepository) DeletePhoto(ctx context.Context, accommodationID, photoID int) error {
	res, err := r.db.ExecContext(ctx, deletePhotoSQL, photoID, accommodationID)
	if err != nil {
		return fmt.Errorf("delete photo %d: %w", photoID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for photo %d: %w", photoID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// -------- helpers --------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccommodation(row rowScanner, a *models.Accommodation) error {
	return row.Scan(&a.ID, &a.Title, &a.Address, &a.Price, &a.DistanceFromUniversity,
		&a.ContactEmail, &a.ContactPhone, &a.BrokerID)
}

// loadRelations fills Amenities and Photos for an already scanned row.
func loadRelations(ctx context.Context, q querier, a *models.Accommodation) error {
	amenities, err := queryAmenities(ctx, q, a.ID)
	if err != nil {
		return err
	}
	photos, err := queryPhotos(ctx, q, a.ID)
	if err != nil {
		return err
	}
	a.Amenities = amenities
	a.Photos = photos
	return nil
}

func queryAmenities(ctx context.Context, q querier, listingID int) ([]models.Amenity, error) {
	rows, err := q.QueryContext(ctx, selectAmenitiesForListingSQL, listingID)
	if err != nil {
		return nil, fmt.Errorf("select amenities for accommodation %d: %w", listingID, err)
	}
	defer rows.Close()

	out := make([]models.Amenity, 0, 8)
	for rows.Next() {
		var am models.Amenity
		if err := rows.Scan(&am.ID, &am.Name); err != nil {
			return nil, err
		}
		out = append(out, am)
	}
	return out, rows.Err()
}

func queryPhotos(ctx context.Context, q querier, listingID int) ([]models.Photo, error) {
	rows, err := q.QueryContext(ctx, selectPhotosSQL, listingID)
	if err != nil {
		return nil, fmt.Errorf("select photos for accommodation %d: %w", listingID, err)
	}
	defer rows.Close()

	out := make([]models.Photo, 0, 8)
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.PhotoURL, &p.AccommodationID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func insertAmenityLinks(ctx context.Context, q querier, listingID int, amenities []models.Amenity) error {
	for _, am := range dedupAmenities(amenities) {
		if _, err := q.ExecContext(ctx, insertListingAmenitySQL, listingID, am.ID); err != nil {
			return fmt.Errorf("link amenity %d to accommodation %d: %w", am.ID, listingID, err)
		}
	}
	return nil
}

// dedupAmenities drops repeated ids so the composite primary key on the
// join table is never violated by sloppy input.
func dedupAmenities(in []models.Amenity) []models.Amenity {
	if len(in) < 2 {
		return in
	}
	seen := make(map[int]struct{}, len(in))
	out := make([]models.Amenity, 0, len(in))
	for _, am := range in {
		if _, ok := seen[am.ID]; ok {
			continue
		}
		seen[am.ID] = struct{}{}
		out = append(out, am)
	}
	return out
}

// placeholders builds "?, ?, ?" for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
