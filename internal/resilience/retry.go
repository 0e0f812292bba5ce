// Package resilience retries calls to external services that fail
// transiently.
package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls retry attempts and exponential backoff.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	// Values < 1 mean a single try.
	Attempts int

	// BaseDelay is the wait before the first retry. It doubles on each
	// subsequent retry up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// Jitter randomises each delay by up to ±Jitter of its value.
	Jitter float64

	// Retryable decides whether an error is worth another try.
	// Default: Retryable.
	Retryable func(error) bool
}

// DefaultPolicy suits interactive lookups: three tries within a few seconds.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 250 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Jitter:    0.2,
	}
}

// Retry calls fn until it succeeds, returns a non-retryable error, runs out
// of attempts, or ctx is done. The last error is returned unchanged.
func Retry[T any](ctx context.Context, p Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = Retryable
	}
	attempts := max(p.Attempts, 1)

	var zero T
	for attempt := 1; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		if attempt >= attempts || ctx.Err() != nil || !retryable(err) {
			return zero, err
		}

		delay := p.backoff(attempt)
		zap.L().Warn("retrying operation",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, err
		case <-timer.C:
		}
	}
}

// backoff returns the delay after the given 1-based attempt.
func (p Policy) backoff(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(2, float64(attempt-1))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	if p.Jitter > 0 {
		d += (rand.Float64()*2 - 1) * d * p.Jitter
	}
	return time.Duration(max(d, 0))
}
