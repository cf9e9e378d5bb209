package models

import "time"

// Audit event types for listing mutations.
const (
	EventListingCreated = "LISTING_CREATED"
	EventListingUpdated = "LISTING_UPDATED"
	EventListingDeleted = "LISTING_DELETED"
	EventPhotoAdded     = "PHOTO_ADDED"
	EventPhotoRemoved   = "PHOTO_REMOVED"
)

// ListingEvent is a single audit log entry.
type ListingEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // LISTING_CREATED | LISTING_UPDATED | LISTING_DELETED | PHOTO_ADDED | PHOTO_REMOVED
	Description string    `json:"description"`
	ListingID   int       `json:"listing_id"`
	ActorID     int       `json:"actor_id"`
}
