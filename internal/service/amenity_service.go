package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accommodation_finder/internal/models"
	"accommodation_finder/internal/repository"
)

// ErrAmenityExists reports a create against a name already in the catalog.
var ErrAmenityExists = errors.New("amenity name already exists")

// AmenityService exposes the shared amenity catalog. Creating new tags
// is a broker operation; reading the catalog is open.
type AmenityService struct {
	amenities repository.Amenities
}

func NewAmenityService(amenities repository.Amenities) *AmenityService {
	return &AmenityService{amenities: amenities}
}

func (s *AmenityService) List(ctx context.Context) ([]models.Amenity, error) {
	return s.amenities.List(ctx)
}

func (s *AmenityService) Create(ctx context.Context, name string, actor Identity) (*models.Amenity, error) {
	if !Permit(actor, ActionAmenityCreate) {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: amenity name is required", ErrInvalidInput)
	}
	id, err := s.amenities.Create(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAmenity) {
			return nil, ErrAmenityExists
		}
		return nil, err
	}
	return &models.Amenity{ID: id, Name: name}, nil
}
