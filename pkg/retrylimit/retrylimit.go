// Package retrylimit paces and retries remote API calls. The limiter adapts
// to the outcome of each call: it speeds up on success and backs off on
// failure, which keeps bulk operations (like slash command registration)
// under the platform's rate limits without hardcoded sleeps.
package retrylimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter wraps a rate.Limiter whose rate moves between min and max
// based on call outcomes. Safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

// NewAdaptiveLimiter creates a limiter starting at initial requests per
// second, bounded by [min, max]. stepUp is added on success; on failure the
// rate is multiplied by stepDown (e.g. 0.5 to halve).
func NewAdaptiveLimiter(initial, min, max rate.Limit, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if initial < 1 {
		initial = 1
	}
	if min < 1 {
		min = 1
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, 1),
		min:      min,
		max:      max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

// Wait blocks until a slot is available or the context is canceled.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return a.limiter.Wait(ctx)
}

// Success nudges the rate up after a successful call.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.adjust(a.limiter.Limit() + a.stepUp)
	}
}

// Failure backs the rate off after a failed or throttled call.
func (a *AdaptiveLimiter) Failure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.adjust(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// CurrentLimit returns the current requests per second.
func (a *AdaptiveLimiter) CurrentLimit() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

func (a *AdaptiveLimiter) adjust(next rate.Limit) {
	if next > a.max {
		next = a.max
	} else if next < a.min {
		next = a.min
	}
	if next != a.limiter.Limit() {
		a.limiter.SetLimit(next)
	}
}

// WithRetryMax runs fn up to maxAttempts times, waiting on the limiter
// before each attempt and doubling the delay between failures.
func WithRetryMax(ctx context.Context, fn func() error, lim *AdaptiveLimiter, maxAttempts int) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delay := 500 * time.Millisecond

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		if err = fn(); err == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}
		if lim != nil {
			lim.Failure()
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("max attempts (%d) exceeded: %w", maxAttempts, err)
}
