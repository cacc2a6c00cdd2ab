//go:build integration

package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/medisense/backend/internal/adapters/cache"
	redisclient "github.com/medisense/backend/internal/infrastructure/clients/redis"
	"github.com/medisense/backend/pkg/config"
	apperrors "github.com/medisense/backend/pkg/errors"
	"github.com/medisense/backend/pkg/retry"
)

func TestCacheStore_Redis(t *testing.T) {
	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(wait.ForLog("Ready to accept connections")),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := redisclient.NewClient(ctx, &config.RedisConfig{
		Enabled: true,
		Host:    host,
		Port:    port.Int(),
	}, retry.DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	store := NewCacheStore(cache.NewRedisAdapter(client), time.Second)

	t.Run("Save and Get", func(t *testing.T) {
		s := sampleSession()
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Selection, got.Selection)
		assert.Equal(t, s.Profile, got.Profile)
	})

	t.Run("Expires after TTL", func(t *testing.T) {
		s := sampleSession()
		require.NoError(t, store.Save(ctx, s))

		assert.Eventually(t, func() bool {
			_, err := store.Get(ctx, s.ID)
			return apperrors.Is(err, apperrors.ErrorTypeNotFound)
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("Delete", func(t *testing.T) {
		s := sampleSession()
		require.NoError(t, store.Save(ctx, s))
		require.NoError(t, store.Delete(ctx, s.ID))

		_, err := store.Get(ctx, s.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	})
}
