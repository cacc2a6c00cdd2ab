package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medisense/backend/internal/domain/providers"
	redisclient "github.com/medisense/backend/internal/infrastructure/clients/redis"
	"github.com/medisense/backend/internal/infrastructure/observability"
)

// DefaultNamespace prefixes every key this service writes to Redis
const DefaultNamespace = "medisense:"

// RedisAdapter stores cached responses and sessions in Redis under a
// namespace, so several deployments can share one instance.
type RedisAdapter struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisAdapter creates a cache adapter that keeps its keys under DefaultNamespace
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return NewNamespacedRedisAdapter(client, DefaultNamespace)
}

// NewNamespacedRedisAdapter creates a cache adapter with a custom key prefix
func NewNamespacedRedisAdapter(client *redisclient.Client, namespace string) *RedisAdapter {
	return &RedisAdapter{rdb: client.Client(), namespace: namespace}
}

func (a *RedisAdapter) key(k string) string {
	return a.namespace + k
}

func (a *RedisAdapter) trace(ctx context.Context, op, key string) (context.Context, func(error)) {
	ctx, span := observability.StartSpan(ctx, "redis."+op)
	observability.SetSpanAttributes(span,
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", op),
		attribute.String("cache.key", key),
	)
	return ctx, func(err error) {
		if err != nil {
			observability.RecordError(span, err)
		}
		span.End()
	}
}

// Get returns the stored bytes or ErrCacheMiss
func (a *RedisAdapter) Get(ctx context.Context, key string) (data []byte, err error) {
	ctx, done := a.trace(ctx, "GET", key)
	defer func() {
		if errors.Is(err, providers.ErrCacheMiss) {
			done(nil)
			return
		}
		done(err)
	}()

	data, err = a.rdb.Get(ctx, a.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("%w: %s", providers.ErrCacheMiss, key)
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set writes value with ttl; a zero ttl keeps the key until deleted
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	ctx, done := a.trace(ctx, "SET", key)
	defer func() { done(err) }()

	if err = a.rdb.Set(ctx, a.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error
func (a *RedisAdapter) Delete(ctx context.Context, key string) (err error) {
	ctx, done := a.trace(ctx, "DEL", key)
	defer func() { done(err) }()

	if err = a.rdb.Del(ctx, a.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is present and unexpired
func (a *RedisAdapter) Exists(ctx context.Context, key string) (found bool, err error) {
	ctx, done := a.trace(ctx, "EXISTS", key)
	defer func() { done(err) }()

	n, err := a.rdb.Exists(ctx, a.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}
