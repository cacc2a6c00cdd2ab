package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	apperrors "github.com/medisense/backend/pkg/errors"
	"github.com/medisense/backend/pkg/geo"
)

// DeviceLocationLabel labels coordinates reported by the user's device
const DeviceLocationLabel = "Your Current Location"

// LocationInput is either device coordinates or free text.
// Coordinates win when both are present.
type LocationInput struct {
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`
	Query     string   `json:"query,omitempty"`
	// QuickSelect marks Query as one of the one-tap area names
	QuickSelect bool `json:"quick_select,omitempty"`
}

// LocationService turns device fixes and typed place names into locations.
// Text lookups never fail: unknown places fall back to the city centre.
type LocationService struct {
	areas repositories.AreaRepository
}

// NewLocationService creates a new location service
func NewLocationService(areas repositories.AreaRepository) *LocationService {
	return &LocationService{areas: areas}
}

// FromDevice accepts raw device coordinates
func (s *LocationService) FromDevice(lat, lng float64) (*entities.Location, error) {
	if !(geo.Point{Latitude: lat, Longitude: lng}).Valid() {
		return nil, apperrors.NewFieldError(map[string]string{
			"location": "Coordinates are out of range.",
		})
	}
	return &entities.Location{
		Latitude:  lat,
		Longitude: lng,
		Label:     DeviceLocationLabel,
		Source:    entities.LocationSourceGPS,
	}, nil
}

// Lookup matches the first area key contained in the normalised text.
// Unmatched text resolves to the city centre labelled with the raw input.
func (s *LocationService) Lookup(ctx context.Context, text string) (*entities.Location, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load area table: %w", err)
	}

	for _, a := range areas {
		if strings.Contains(key, a.Key) {
			loc := a.Location
			loc.Source = entities.LocationSourceLookup
			return &loc, nil
		}
	}

	label := text
	if label == "" {
		label = "Vellore"
	}
	return s.fallback(ctx, label)
}

// QuickSelect matches an area name in either direction, so "CMC" and
// "Gandhi Nagar" both resolve.
func (s *LocationService) QuickSelect(ctx context.Context, area string) (*entities.Location, error) {
	key := strings.ToLower(area)
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load area table: %w", err)
	}

	for _, a := range areas {
		if strings.Contains(key, a.Key) || strings.Contains(a.Key, key) {
			loc := a.Location
			loc.Source = entities.LocationSourceQuickSelect
			return &loc, nil
		}
	}
	return s.fallback(ctx, area)
}

// Resolve dispatches on the shape of the input
func (s *LocationService) Resolve(ctx context.Context, in LocationInput) (*entities.Location, error) {
	switch {
	case in.Latitude != nil && in.Longitude != nil:
		return s.FromDevice(*in.Latitude, *in.Longitude)
	case in.Latitude != nil || in.Longitude != nil:
		return nil, apperrors.NewFieldError(map[string]string{
			"location": "Both lat and lng are required.",
		})
	case in.QuickSelect:
		return s.QuickSelect(ctx, in.Query)
	default:
		return s.Lookup(ctx, in.Query)
	}
}

// QuickSelectNames lists the one-tap area choices
func (s *LocationService) QuickSelectNames(ctx context.Context) ([]string, error) {
	return s.areas.QuickSelectNames(ctx)
}

func (s *LocationService) fallback(ctx context.Context, label string) (*entities.Location, error) {
	def, err := s.areas.Default(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load default location: %w", err)
	}
	def.Label = label
	def.Source = entities.LocationSourceDefault
	return &def, nil
}
