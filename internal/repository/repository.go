package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"accommodation_finder/internal/models"
	"accommodation_finder/internal/repository/db"
)

// Sentinel storage errors surfaced to the service layer.
var (
	// ErrNotFound is returned when a row with the requested id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername / ErrDuplicateEmail report a lost race against the
	// users table unique constraints. They are authoritative: the service
	// exists pre-checks only reduce the odds of hitting them.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already in use")
	// ErrDuplicateAmenity reports a name collision against the amenities
	// table unique constraint.
	ErrDuplicateAmenity = errors.New("amenity name already exists")
)

type Users interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Accommodations interface {
	List(ctx context.Context) ([]models.Accommodation, error)
	GetByID(ctx context.Context, id int) (*models.Accommodation, error)
	ListByBroker(ctx context.Context, brokerID int) ([]models.Accommodation, error)
	Create(ctx context.Context, a models.Accommodation) (int, error)
	Update(ctx context.Context, a models.Accommodation) error
	Delete(ctx context.Context, id int) error
	AddPhoto(ctx context.Context, accommodationID int, photoURL string) (int, error)
	DeletePhoto(ctx context.Context, accommodationID, photoID int) error
}

type Amenities interface {
	List(ctx context.Context) ([]models.Amenity, error)
	GetByIDs(ctx context.Context, ids []int) ([]models.Amenity, error)
	Create(ctx context.Context, name string) (int, error)
}

type Events interface {
	Append(ctx context.Context, e models.ListingEvent) error
	List(ctx context.Context, f EventFilter) ([]models.ListingEvent, error)
}

// EventFilter narrows the audit log query; zero values mean "no filter".
type EventFilter struct {
	From      time.Time
	To        time.Time
	Type      string
	ListingID int
}

type Repository struct {
	Users          Users
	Accommodations Accommodations
	Amenities      Amenities
	Events         Events
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:          NewUserRepository(sqlDB),
		Accommodations: NewAccommodationRepository(sqlDB),
		Amenities:      NewAmenityRepository(sqlDB),
		Events:         NewEventRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
