package service

import "accommodation_finder/internal/models"

// Action names an operation subject to authorization.
type Action string

const (
	ActionListingRead   Action = "listing:read"
	ActionListingCreate Action = "listing:create"
	ActionListingUpdate Action = "listing:update"
	ActionListingDelete Action = "listing:delete"
	ActionPhotoAdd      Action = "photo:add"
	ActionPhotoRemove   Action = "photo:remove"
	ActionAmenityCreate Action = "amenity:create"
)

// Permit decides whether an identity may perform an action. It is a
// pure function over the role carried on the identity: reads are open
// to everyone, all mutations require the BROKER role.
func Permit(id Identity, action Action) bool {
	if action == ActionListingRead {
		return true
	}
	return id.Role == models.RoleBroker
}
