package repositories

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
)

// ConditionRepository exposes the static condition catalog
type ConditionRepository interface {
	// List returns every condition in catalog order
	List(ctx context.Context) ([]entities.Condition, error)

	// GetByName retrieves a condition by its exact name
	GetByName(ctx context.Context, name string) (*entities.Condition, error)
}
