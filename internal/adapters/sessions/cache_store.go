package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/providers"
	"github.com/medisense/backend/internal/domain/repositories"
	apperrors "github.com/medisense/backend/pkg/errors"
)

const sessionKeyPrefix = "session:"

// CacheStore keeps sessions in a CacheProvider such as Redis. Every save
// refreshes the TTL, so idle sessions expire on their own.
type CacheStore struct {
	cache providers.CacheProvider
	ttl   time.Duration
}

// NewCacheStore creates a session store backed by cache
func NewCacheStore(cache providers.CacheProvider, ttl time.Duration) repositories.SessionRepository {
	return &CacheStore{cache: cache, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save creates or replaces a session
func (c *CacheStore) Save(ctx context.Context, session *entities.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	if err := c.cache.Set(ctx, sessionKey(session.ID), data, c.ttl); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// Get retrieves a session by ID
func (c *CacheStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	data, err := c.cache.Get(ctx, sessionKey(id))
	if errors.Is(err, providers.ErrCacheMiss) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return decodeSession(data)
}

// Delete removes a session
func (c *CacheStore) Delete(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, sessionKey(id))
}

// DeleteIdle is a no-op; the cache expires idle sessions by TTL
func (c *CacheStore) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}
