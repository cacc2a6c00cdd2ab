package repositories

import (
	"context"
	"time"

	"github.com/medisense/backend/internal/domain/entities"
)

// SessionRepository stores workflow sessions
type SessionRepository interface {
	// Save creates or replaces a session
	Save(ctx context.Context, session *entities.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*entities.Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// DeleteIdle removes sessions not updated since cutoff and returns how many were removed
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
}
