package service

import (
	"context"
	"time"

	"accommodation_finder/internal/models"
	"accommodation_finder/internal/repository"
)

// Identity is a verified caller: user id plus role, as carried in a
// parsed token. It is the only thing the authorization gate looks at.
type Identity struct {
	UserID int
	Role   string
}

// RegisterInput is the sign-up payload after HTTP binding.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string // optional; defaults to USER
}

// ListingInput carries the caller-editable fields of a listing. The
// broker is never taken from here; it comes from the acting identity.
type ListingInput struct {
	Title                  string
	Address                string
	Price                  float64
	DistanceFromUniversity float64
	ContactEmail           string
	ContactPhone           string
	AmenityIDs             []int
	PhotoURLs              []string // honored on create only
}

// LogFilter narrows audit log queries.
type LogFilter struct {
	From      time.Time
	To        time.Time
	Type      string
	ListingID int
}

type Authorization interface {
	SignUp(ctx context.Context, in RegisterInput) (*models.User, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (Identity, error)
}

// Listings exposes CRUD over accommodations with role-gated mutations.
type Listings interface {
	List(ctx context.Context) ([]models.Accommodation, error)
	Get(ctx context.Context, id int) (*models.Accommodation, error)
	ListByBroker(ctx context.Context, brokerID int) ([]models.Accommodation, error)
	Create(ctx context.Context, in ListingInput, actor Identity) (*models.Accommodation, error)
	Update(ctx context.Context, id int, in ListingInput, actor Identity) (*models.Accommodation, error)
	Delete(ctx context.Context, id int, actor Identity) error
	AddPhoto(ctx context.Context, listingID int, photoURL string, actor Identity) (*models.Photo, error)
	RemovePhoto(ctx context.Context, listingID, photoID int, actor Identity) error
}

// Amenities exposes the shared amenity catalog.
type Amenities interface {
	List(ctx context.Context) ([]models.Amenity, error)
	Create(ctx context.Context, name string, actor Identity) (*models.Amenity, error)
}

// EventLog exposes the append-only listing audit trail with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ListingEvent, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Listings
	Amenities
	EventLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Listings:      NewListingService(repos.Accommodations, repos.Amenities, repos.Events),
		Amenities:     NewAmenityService(repos.Amenities),
		EventLog:      NewEventLogService(repos.Events),
	}
}
