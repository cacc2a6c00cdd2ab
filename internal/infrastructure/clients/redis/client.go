package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medisense/backend/internal/infrastructure/observability"
	"github.com/medisense/backend/pkg/config"
	"github.com/medisense/backend/pkg/retry"
)

// clientName shows up in CLIENT LIST on the server
const clientName = "medisense-api"

// Client owns the go-redis connection pool shared by the session store,
// the response cache and the booking event bus
type Client struct {
	rdb *redis.Client
}

func options(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   clientName,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// NewClient connects to cfg and blocks until PING succeeds or retryCfg is
// exhausted. Redis often starts after the API under docker compose.
func NewClient(ctx context.Context, cfg *config.RedisConfig, retryCfg retry.Config) (*Client, error) {
	rdb := redis.NewClient(options(cfg))
	logger := observability.LoggerFromContext(ctx)

	ping := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	backoff := func(attempt int, err error, wait time.Duration) {
		logger.Warn().Err(err).
			Str("addr", cfg.RedisAddr()).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Redis not ready, retrying")
	}
	if err := retry.DoNotify(ctx, retryCfg, "redis", ping, backoff); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr(), err)
	}
	return &Client{rdb: rdb}, nil
}

// Client returns the underlying go-redis client
func (c *Client) Client() *redis.Client {
	return c.rdb
}

// Close releases the connection pool
func (c *Client) Close() error {
	return c.rdb.Close()
}
