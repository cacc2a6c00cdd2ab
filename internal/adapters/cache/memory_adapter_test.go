package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisense/backend/internal/domain/providers"
)

func TestMemoryAdapter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := NewMemoryAdapter()
	a.now = func() time.Time { return now }

	t.Run("miss", func(t *testing.T) {
		_, err := a.Get(ctx, "absent")
		assert.ErrorIs(t, err, providers.ErrCacheMiss)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, a.Set(ctx, "k", []byte("v"), 0))
		got, err := a.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		ok, _ := a.Exists(ctx, "k")
		assert.True(t, ok)

		require.NoError(t, a.Delete(ctx, "k"))
		ok, _ = a.Exists(ctx, "k")
		assert.False(t, ok)
	})

	t.Run("ttl expiry", func(t *testing.T) {
		require.NoError(t, a.Set(ctx, "short", []byte("v"), time.Minute))
		now = now.Add(59 * time.Second)
		_, err := a.Get(ctx, "short")
		assert.NoError(t, err)

		now = now.Add(time.Second)
		_, err = a.Get(ctx, "short")
		assert.ErrorIs(t, err, providers.ErrCacheMiss)
	})

	t.Run("stored bytes are copied", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, a.Set(ctx, "copy", buf, 0))
		buf[0] = 'x'
		got, _ := a.Get(ctx, "copy")
		assert.Equal(t, []byte("abc"), got)
	})
}
