package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream 503")

func fastConfig() Config {
	return Config{
		Name:      "test-news-api",
		Probes:    1,
		Window:    10 * time.Second,
		Cooldown:  100 * time.Millisecond,
		TripRatio: 0.6,
		MinCalls:  3,
	}
}

func fail(b *Breaker, n int) {
	for i := 0; i < n; i++ {
		_, _ = Do(b, func() (int, error) { return 0, errUpstream })
	}
}

func TestNew(t *testing.T) {
	b := New(NewsAPIConfig())

	require.NotNil(t, b)
	assert.Equal(t, "news-api", b.Name())
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.False(t, b.Open())
}

func TestDo_PassesThroughResults(t *testing.T) {
	b := New(fastConfig())

	got, err := Do(b, func() (string, error) { return "body", nil })
	require.NoError(t, err)
	assert.Equal(t, "body", got)

	got, err = Do(b, func() (string, error) { return "partial", errUpstream })
	assert.ErrorIs(t, err, errUpstream)
	assert.Empty(t, got, "失敗時はゼロ値を返す")
	assert.False(t, Rejected(err))
}

func TestDo_TripsAndRejects(t *testing.T) {
	// Arrange
	b := New(fastConfig())

	// Act
	fail(b, 3)

	// Assert
	require.True(t, b.Open())
	called := false
	_, err := Do(b, func() (int, error) {
		called = true
		return 1, nil
	})
	assert.False(t, called, "an open breaker must not call through")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, Rejected(err))
}

func TestConfig_Tripped(t *testing.T) {
	cfg := fastConfig()

	tests := []struct {
		name   string
		counts gobreaker.Counts
		want   bool
	}{
		{name: "no calls", counts: gobreaker.Counts{}, want: false},
		{name: "below min calls", counts: gobreaker.Counts{Requests: 2, TotalFailures: 2}, want: false},
		{name: "ratio reached", counts: gobreaker.Counts{Requests: 5, TotalFailures: 3}, want: true},
		{name: "ratio not reached", counts: gobreaker.Counts{Requests: 5, TotalFailures: 2}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.tripped(tt.counts))
		})
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b := New(fastConfig())
	fail(b, 3)
	require.True(t, b.Open())

	time.Sleep(150 * time.Millisecond)
	_, err := Do(b, func() (string, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_NotifiesTransitions(t *testing.T) {
	// Arrange
	type transition struct{ from, to gobreaker.State }
	var seen []transition
	b := New(fastConfig(), func(name string, from, to gobreaker.State) {
		assert.Equal(t, "test-news-api", name)
		seen = append(seen, transition{from, to})
	})

	// Act
	fail(b, 3)
	time.Sleep(150 * time.Millisecond)
	_, _ = Do(b, func() (bool, error) { return true, nil })

	// Assert
	assert.Equal(t, []transition{
		{gobreaker.StateClosed, gobreaker.StateOpen},
		{gobreaker.StateOpen, gobreaker.StateHalfOpen},
		{gobreaker.StateHalfOpen, gobreaker.StateClosed},
	}, seen)
}

func TestNewsAPIConfig(t *testing.T) {
	cfg := NewsAPIConfig()

	assert.Equal(t, 20*time.Second, cfg.Cooldown)
	assert.Equal(t, 0.6, cfg.TripRatio)
	assert.Equal(t, uint32(5), cfg.MinCalls)
	assert.Equal(t, uint32(2), cfg.Probes)
}
