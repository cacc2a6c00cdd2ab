package repositories

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
)

// ProviderRepository exposes the static provider directory
type ProviderRepository interface {
	// List returns every provider in directory order
	List(ctx context.Context) ([]entities.Provider, error)

	// GetByID retrieves a provider by ID
	GetByID(ctx context.Context, id int) (*entities.Provider, error)
}
