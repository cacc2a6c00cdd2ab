// Package retry runs an operation until it succeeds, backing off
// exponentially between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config bounds a retry loop by attempts and by total wall time
type Config struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	MaxTotalTimeout time.Duration
}

// DefaultConfig suits waiting for a dependency to come up at startup
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     10,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        10 * time.Second,
		BackoffFactor:   2.0,
		MaxTotalTimeout: time.Minute,
	}
}

// wait returns the pause after the given failed attempt (1-based)
func (c Config) wait(attempt int) time.Duration {
	d := c.InitialDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * c.BackoffFactor)
		if c.MaxDelay > 0 && d >= c.MaxDelay {
			return c.MaxDelay
		}
	}
	return d
}

// Notify is told about every failed attempt that will be retried
type Notify func(attempt int, err error, wait time.Duration)

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs op until it succeeds, returns a Permanent error, or cfg is exhausted
func Do(ctx context.Context, cfg Config, op func(context.Context) error) error {
	return DoNotify(ctx, cfg, "", op, nil)
}

// DoNotify is Do with a callback before each backoff. A non-empty name
// prefixes the returned error.
func DoNotify(ctx context.Context, cfg Config, name string, op func(context.Context) error, notify Notify) error {
	err := loop(ctx, cfg, op, notify)
	if err != nil && name != "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return err
}

func loop(ctx context.Context, cfg Config, op func(context.Context) error, notify Notify) error {
	if cfg.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.MaxTotalTimeout)
		defer cancel()
	}
	attempts := max(cfg.MaxAttempts, 1)

	var last error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return aborted(attempt-1, err, last)
		}

		last = op(ctx)
		if last == nil {
			return nil
		}
		if perm := (*permanentError)(nil); errors.As(last, &perm) {
			return perm.err
		}
		if attempt == attempts {
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, last)
		}

		pause := cfg.wait(attempt)
		if notify != nil {
			notify(attempt, last, pause)
		}
		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return aborted(attempt, ctx.Err(), last)
		case <-timer.C:
		}
	}
}

func aborted(attempts int, cause, last error) error {
	if last == nil {
		return fmt.Errorf("retry aborted: %w", cause)
	}
	return fmt.Errorf("retry aborted after %d attempts: %w (last error: %v)", attempts, cause, last)
}
