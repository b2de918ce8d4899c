package newsapi

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces outgoing API calls with a token bucket.
// A nil *RateLimiter never blocks.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained calls
// and bursts of up to burst calls. A non-positive rate disables pacing and
// returns nil.
//
// Example:
//
//	limiter := NewRateLimiter(5, 10) // 5 req/s, bursts of 10
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done.
// It also fails immediately when ctx's deadline is too close for a token to arrive.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}
