// Package retry re-runs failed news API calls with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config controls how often and how patiently an operation is re-run.
type Config struct {
	// MaxAttempts counts the first call. 1 or less disables retrying.
	MaxAttempts int

	// InitialDelay is the pause before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps the pause between attempts before jitter is added.
	MaxDelay time.Duration

	// Multiplier grows the pause after each failed attempt.
	Multiplier float64

	// JitterFraction adds up to this fraction of the pause at random (0.0 to 1.0).
	JitterFraction float64

	// OnRetry, when set, is called before each pause instead of the default log line.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// NewsAPIConfig returns the retry policy of the news API client.
// The reader does not retry automatically unless attempts is raised above 1;
// a failed view waits for the user to re-trigger it.
func NewsAPIConfig(attempts int) Config {
	if attempts < 1 {
		attempts = 1
	}
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   300 * time.Millisecond,
		MaxDelay:       3 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff runs fn until it succeeds, fails with a non-retryable error,
// ctx is done, or MaxAttempts is reached.
//
// With MaxAttempts of 1 or less, fn runs exactly once and its error is
// returned as is. Otherwise an exhausted budget wraps the last error.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts <= 1 {
		return fn()
	}

	b := backoff{cfg: cfg, delay: cfg.InitialDelay}
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			return fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}

		delay := b.next()
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		} else {
			slog.Warn("news api call failed, retrying",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", cfg.MaxAttempts),
				slog.Duration("delay", delay),
				slog.Any("error", err))
		}

		if err := sleep(ctx, delay); err != nil {
			return fmt.Errorf("retry aborted after %d attempts: %w", attempt, err)
		}
	}
}

// backoff hands out the successive pauses of one WithBackoff run.
type backoff struct {
	cfg   Config
	delay time.Duration
}

func (b *backoff) next() time.Duration {
	d := addJitter(b.delay, b.cfg.JitterFraction)
	b.delay = min(time.Duration(float64(b.delay)*b.cfg.Multiplier), b.cfg.MaxDelay)
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRetryable reports whether err is a transient transport failure or a
// status the API may answer differently on the next attempt.
// Cancellation by the caller is never retried.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatus(httpErr.StatusCode)
	}
	return false
}

func retryableStatus(code int) bool {
	switch {
	case code >= 500 && code < 600:
		return true
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need cryptographic randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
