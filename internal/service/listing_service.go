package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accommodation_finder/internal/models"
	"accommodation_finder/internal/repository"
)

// Domain errors for listing flows.
var (
	ErrForbidden    = errors.New("operation requires BROKER role")
	ErrNotFound     = errors.New("accommodation not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ListingService implements CRUD over accommodations. Every mutation
// consults the authorization gate first and appends an audit event
// after the store write.
type ListingService struct {
	listings  repository.Accommodations
	amenities repository.Amenities
	events    repository.Events
}

func NewListingService(listings repository.Accommodations, amenities repository.Amenities, events repository.Events) *ListingService {
	return &ListingService{listings: listings, amenities: amenities, events: events}
}

// List returns all listings.
func (s *ListingService) List(ctx context.Context) ([]models.Accommodation, error) {
	return s.listings.List(ctx)
}

// Get returns one listing with its amenities and photos.
func (s *ListingService) Get(ctx context.Context, id int) (*models.Accommodation, error) {
	a, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

// ListByBroker returns the broker's listings. An unknown broker id is
// not an error; the result is just empty.
func (s *ListingService) ListByBroker(ctx context.Context, brokerID int) ([]models.Accommodation, error) {
	return s.listings.ListByBroker(ctx, brokerID)
}

// Create persists a new listing owned by the acting identity. The
// broker reference always comes from the actor, never from the input.
func (s *ListingService) Create(ctx context.Context, in ListingInput, actor Identity) (*models.Accommodation, error) {
	if !Permit(actor, ActionListingCreate) {
		return nil, ErrForbidden
	}
	if err := validateListingInput(in); err != nil {
		return nil, err
	}
	amenities, err := s.resolveAmenities(ctx, in.AmenityIDs)
	if err != nil {
		return nil, err
	}

	a := models.Accommodation{
		Title:                  strings.TrimSpace(in.Title),
		Address:                strings.TrimSpace(in.Address),
		Price:                  in.Price,
		DistanceFromUniversity: in.DistanceFromUniversity,
		ContactEmail:           strings.TrimSpace(in.ContactEmail),
		ContactPhone:           strings.TrimSpace(in.ContactPhone),
		BrokerID:               actor.UserID,
		Amenities:              amenities,
	}
	for _, url := range in.PhotoURLs {
		if url = strings.TrimSpace(url); url != "" {
			a.Photos = append(a.Photos, models.Photo{PhotoURL: url})
		}
	}

	id, err := s.listings.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	created, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.appendEvent(ctx, models.EventListingCreated, id, actor,
		fmt.Sprintf("Listing %q created", created.Title)); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the scalar fields and the whole amenity set. Broker
// and photos are never touched by update.
func (s *ListingService) Update(ctx context.Context, id int, in ListingInput, actor Identity) (*models.Accommodation, error) {
	if !Permit(actor, ActionListingUpdate) {
		return nil, ErrForbidden
	}
	if err := validateListingInput(in); err != nil {
		return nil, err
	}
	amenities, err := s.resolveAmenities(ctx, in.AmenityIDs)
	if err != nil {
		return nil, err
	}

	a := models.Accommodation{
		ID:                     id,
		Title:                  strings.TrimSpace(in.Title),
		Address:                strings.TrimSpace(in.Address),
		Price:                  in.Price,
		DistanceFromUniversity: in.DistanceFromUniversity,
		ContactEmail:           strings.TrimSpace(in.ContactEmail),
		ContactPhone:           strings.TrimSpace(in.ContactPhone),
		Amenities:              amenities,
	}
	if err := s.listings.Update(ctx, a); err != nil {
		return nil, mapNotFound(err)
	}
	updated, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.appendEvent(ctx, models.EventListingUpdated, id, actor,
		fmt.Sprintf("Listing %q updated", updated.Title)); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a listing and cascades its photos. A second delete of
// the same id yields ErrNotFound; that terminal state is not suppressed.
func (s *ListingService) Delete(ctx context.Context, id int, actor Identity) error {
	if !Permit(actor, ActionListingDelete) {
		return ErrForbidden
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return s.appendEvent(ctx, models.EventListingDeleted, id, actor,
		fmt.Sprintf("Listing %d deleted", id))
}

// AddPhoto attaches a photo reference to an existing listing.
func (s *ListingService) AddPhoto(ctx context.Context, listingID int, photoURL string, actor Identity) (*models.Photo, error) {
	if !Permit(actor, ActionPhotoAdd) {
		return nil, ErrForbidden
	}
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return nil, fmt.Errorf("%w: photo_url is required", ErrInvalidInput)
	}
	id, err := s.listings.AddPhoto(ctx, listingID, photoURL)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.appendEvent(ctx, models.EventPhotoAdded, listingID, actor,
		fmt.Sprintf("Photo %d added", id)); err != nil {
		return nil, err
	}
	return &models.Photo{ID: id, PhotoURL: photoURL, AccommodationID: listingID}, nil
}

// RemovePhoto deletes one photo from a listing. The listing id is part
// of the lookup, so photos of other listings are unreachable.
func (s *ListingService) RemovePhoto(ctx context.Context, listingID, photoID int, actor Identity) error {
	if !Permit(actor, ActionPhotoRemove) {
		return ErrForbidden
	}
	if err := s.listings.DeletePhoto(ctx, listingID, photoID); err != nil {
		return mapNotFound(err)
	}
	return s.appendEvent(ctx, models.EventPhotoRemoved, listingID, actor,
		fmt.Sprintf("Photo %d removed", photoID))
}

// resolveAmenities validates that every requested id exists and returns
// the matching records.
func (s *ListingService) resolveAmenities(ctx context.Context, ids []int) ([]models.Amenity, error) {
	if len(ids) == 0 {
		return []models.Amenity{}, nil
	}
	found, err := s.amenities.GetByIDs(ctx, uniqueInts(ids))
	if err != nil {
		return nil, err
	}
	if len(found) != len(uniqueInts(ids)) {
		return nil, fmt.Errorf("%w: one or more amenity ids do not exist", ErrInvalidInput)
	}
	return found, nil
}

func (s *ListingService) appendEvent(ctx context.Context, typ string, listingID int, actor Identity, desc string) error {
	return s.events.Append(ctx, models.ListingEvent{
		Type:        typ,
		Description: desc,
		ListingID:   listingID,
		ActorID:     actor.UserID,
	})
}

func validateListingInput(in ListingInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case strings.TrimSpace(in.Address) == "":
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	case strings.TrimSpace(in.ContactEmail) == "":
		return fmt.Errorf("%w: contact_email is required", ErrInvalidInput)
	case strings.TrimSpace(in.ContactPhone) == "":
		return fmt.Errorf("%w: contact_phone is required", ErrInvalidInput)
	case in.Price < 0:
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	case in.DistanceFromUniversity < 0:
		return fmt.Errorf("%w: distance_from_university must be non-negative", ErrInvalidInput)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func uniqueInts(in []int) []int {
	if len(in) < 2 {
		return in
	}
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
