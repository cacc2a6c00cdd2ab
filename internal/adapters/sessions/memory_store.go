package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	apperrors "github.com/medisense/backend/pkg/errors"
)

type storedSession struct {
	data      []byte
	updatedAt time.Time
}

// MemoryStore keeps encoded sessions in a map so callers never share
// a *Session with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]storedSession
}

// NewMemoryStore creates an empty in-process session store
func NewMemoryStore() repositories.SessionRepository {
	return &MemoryStore{sessions: make(map[string]storedSession)}
}

// Save creates or replaces a session
func (m *MemoryStore) Save(ctx context.Context, session *entities.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = storedSession{data: data, updatedAt: session.UpdatedAt}
	return nil
}

// Get retrieves a session by ID
func (m *MemoryStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	m.mu.RLock()
	stored, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", id))
	}
	return decodeSession(stored.data)
}

// Delete removes a session
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// DeleteIdle removes sessions last updated before cutoff
func (m *MemoryStore) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, stored := range m.sessions {
		if stored.updatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}
