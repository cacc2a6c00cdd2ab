package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss reports an absent or expired key
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider is the byte store behind sessions and cached reference
// responses. The memory adapter serves a single replica and the Redis
// adapter shares state across replicas.
type CacheProvider interface {
	// Get wraps ErrCacheMiss when key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	// Set with a zero ttl never expires
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
