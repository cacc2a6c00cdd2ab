package entities

import "github.com/medisense/backend/pkg/geo"

// LocationSource records how a location was resolved
type LocationSource string

const (
	LocationSourceGPS         LocationSource = "gps"
	LocationSourceLookup      LocationSource = "lookup"
	LocationSourceQuickSelect LocationSource = "quick_select"
	LocationSourceDefault     LocationSource = "default"
)

// Location represents a resolved geographical location
type Location struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Label     string         `json:"label"`
	Source    LocationSource `json:"source,omitempty"`
}

// Point returns the coordinates for distance calculations
func (l Location) Point() geo.Point {
	return geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Area is one row of the neighbourhood lookup table
type Area struct {
	Key      string   `json:"key"`
	Location Location `json:"location"`
}
