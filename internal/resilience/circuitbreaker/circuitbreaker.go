// Package circuitbreaker stops calling the news API once it keeps failing
// and lets a few probes through after a cooldown.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes when a breaker opens and how it recovers.
type Config struct {
	Name string

	// Probes is how many calls a half-open breaker lets through.
	Probes uint32

	// Window resets the closed-state counters this often. Zero keeps them forever.
	Window time.Duration

	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration

	// TripRatio is the failure share (0.0 to 1.0) that opens the breaker
	// once at least MinCalls calls were counted in the current window.
	TripRatio float64
	MinCalls  uint32
}

// NewsAPIConfig opens after 60% failures over at least five calls
// and probes again after 20s.
func NewsAPIConfig() Config {
	return Config{
		Name:      "news-api",
		Probes:    2,
		Window:    30 * time.Second,
		Cooldown:  20 * time.Second,
		TripRatio: 0.6,
		MinCalls:  5,
	}
}

func (c Config) tripped(counts gobreaker.Counts) bool {
	if counts.Requests < c.MinCalls || counts.Requests == 0 {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.TripRatio
}

// Transition is called after the breaker changed state.
type Transition func(name string, from, to gobreaker.State)

// Breaker guards calls to one upstream.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// New builds a breaker. onChange callbacks run after the transition is logged.
func New(cfg Config, onChange ...Transition) *Breaker {
	return &Breaker{
		name: cfg.Name,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: cfg.Probes,
			Interval:    cfg.Window,
			Timeout:     cfg.Cooldown,
			ReadyToTrip: cfg.tripped,
			OnStateChange: func(name string, from, to gobreaker.State) {
				level := slog.LevelWarn
				if to == gobreaker.StateClosed {
					level = slog.LevelInfo
				}
				slog.Log(context.Background(), level, "circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
				for _, fn := range onChange {
					fn(name, from, to)
				}
			},
		}),
	}
}

// Do runs fn unless b is open. A rejected call returns gobreaker.ErrOpenState
// or gobreaker.ErrTooManyRequests without calling fn.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Open reports whether calls are currently rejected outright.
func (b *Breaker) Open() bool { return b.cb.State() == gobreaker.StateOpen }

// Rejected reports whether err came from the breaker rather than the call.
func Rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
