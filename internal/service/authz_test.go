package service

import (
	"testing"

	"accommodation_finder/internal/models"
)

func TestPermit(t *testing.T) {
	broker := Identity{UserID: 1, Role: models.RoleBroker}
	user := Identity{UserID: 2, Role: models.RoleUser}
	anonymous := Identity{}

	cases := []struct {
		name   string
		id     Identity
		action Action
		want   bool
	}{
		{"broker creates listing", broker, ActionListingCreate, true},
		{"broker updates listing", broker, ActionListingUpdate, true},
		{"broker deletes listing", broker, ActionListingDelete, true},
		{"broker adds photo", broker, ActionPhotoAdd, true},
		{"broker removes photo", broker, ActionPhotoRemove, true},
		{"broker creates amenity", broker, ActionAmenityCreate, true},
		{"broker reads listings", broker, ActionListingRead, true},

		{"user reads listings", user, ActionListingRead, true},
		{"user creates listing", user, ActionListingCreate, false},
		{"user updates listing", user, ActionListingUpdate, false},
		{"user deletes listing", user, ActionListingDelete, false},
		{"user adds photo", user, ActionPhotoAdd, false},
		{"user removes photo", user, ActionPhotoRemove, false},
		{"user creates amenity", user, ActionAmenityCreate, false},

		{"anonymous reads listings", anonymous, ActionListingRead, true},
		{"anonymous creates listing", anonymous, ActionListingCreate, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Permit(tc.id, tc.action); got != tc.want {
				t.Fatalf("Permit(%+v, %q) = %v, want %v", tc.id, tc.action, got, tc.want)
			}
		})
	}
}
