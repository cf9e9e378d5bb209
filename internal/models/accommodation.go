package models

// Accommodation is a rental listing published by a broker.
type Accommodation struct {
	ID                     int       `json:"id"`
	Title                  string    `json:"title"`
	Address                string    `json:"address"`
	Price                  float64   `json:"price"`                    // monthly rent, non-negative
	DistanceFromUniversity float64   `json:"distance_from_university"` // km, non-negative
	ContactEmail           string    `json:"contact_email"`
	ContactPhone           string    `json:"contact_phone"`
	BrokerID               int       `json:"broker_id"`
	Amenities              []Amenity `json:"amenities"`
	Photos                 []Photo   `json:"photos"`
}

// Amenity is a shared facility tag (e.g. "WiFi", "Parking"),
// referenced by many accommodations.
type Amenity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Photo belongs to exactly one accommodation and cannot outlive it.
type Photo struct {
	ID              int    `json:"id"`
	PhotoURL        string `json:"photo_url"`
	AccommodationID int    `json:"accommodation_id"`
}
