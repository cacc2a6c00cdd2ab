package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestDo(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(5), func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		cause := errors.New("down")
		calls := 0
		err := Do(context.Background(), fastConfig(3), func(context.Context) error {
			calls++
			return cause
		})
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		cause := errors.New("bad credentials")
		calls := 0
		err := Do(context.Background(), fastConfig(5), func(context.Context) error {
			calls++
			return Permanent(cause)
		})
		assert.Equal(t, cause, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context aborts before the first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := Do(ctx, fastConfig(5), func(context.Context) error {
			calls++
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})
}

func TestDoNotify(t *testing.T) {
	var attempts []int
	var waits []time.Duration
	err := DoNotify(context.Background(), fastConfig(4), "redis", func(context.Context) error {
		return errors.New("refused")
	}, func(attempt int, err error, wait time.Duration) {
		attempts = append(attempts, attempt)
		waits = append(waits, wait)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: max retry attempts (4) exceeded")
	assert.Equal(t, []int{1, 2, 3}, attempts)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestConfigWait(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 100*time.Millisecond, cfg.wait(1))
	assert.Equal(t, 800*time.Millisecond, cfg.wait(4))
	assert.Equal(t, 10*time.Second, cfg.wait(9))
}
