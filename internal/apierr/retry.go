package apierr

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig holds retry parameters for exponential backoff.
//
// Invalid values are normalized:
//   - MaxRetries < 0 becomes 0 (single attempt)
//   - BaseDelay <= 0 becomes 1ms
//   - MaxDelay <= 0 becomes BaseDelay
//   - nil ShouldRetry becomes IsTransient
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// ShouldRetry decides whether an error is worth another attempt.
	ShouldRetry func(error) bool

	// OnRetry, if set, is called before each wait with the failed attempt
	// number (1-based), its error and the upcoming delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultRetryConfig returns the backoff used when retries are enabled.
func DefaultRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
	}
}

func (c *RetryConfig) normalize() {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = c.BaseDelay
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = IsTransient
	}
}

// RetryWithBackoff runs fn until it succeeds, returns a non-retryable error,
// or MaxRetries extra attempts are used up. Each attempt re-runs fn from
// scratch; nothing from a failed attempt is kept.
//
// The context is checked before every attempt and during every wait.
func RetryWithBackoff[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg.normalize()

	var zero T
	var lastErr error
	delay := cfg.BaseDelay

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if cfg.OnRetry != nil {
				cfg.OnRetry(attempt, lastErr, delay)
			}
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
			delay = min(delay*2, cfg.MaxDelay)
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !cfg.ShouldRetry(lastErr) {
			return zero, lastErr
		}
	}

	if cfg.MaxRetries == 0 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("gave up after %d retries: %w", cfg.MaxRetries, lastErr)
}
