package repositories

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
)

// AreaRepository exposes the neighbourhood lookup table
type AreaRepository interface {
	// List returns the areas in match-priority order
	List(ctx context.Context) ([]entities.Area, error)

	// QuickSelectNames returns the area names offered as one-tap choices
	QuickSelectNames(ctx context.Context) ([]string, error)

	// Default returns the city-centre fallback coordinates
	Default(ctx context.Context) (entities.Location, error)
}
