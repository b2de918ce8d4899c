package eventloop

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_PostRunsInOrder(t *testing.T) {
	// Arrange
	l := New()
	var got []int
	for i := 1; i <= 3; i++ {
		l.Post(func() { got = append(got, i) })
	}

	// Act
	n := l.RunPending()

	// Assert
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestLoop_HandlersPostedByHandlersRunAfter(t *testing.T) {
	l := New()
	var got []string
	l.Post(func() {
		got = append(got, "a")
		l.Post(func() { got = append(got, "c") })
	})
	l.Post(func() { got = append(got, "b") })

	l.RunPending()

	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestGo_CompletionRunsOnDrain(t *testing.T) {
	// Arrange
	l := New()
	release := make(chan struct{})
	var (
		result int
		resErr error
		calls  int
	)

	// Act
	Go(l, func() (int, error) {
		<-release
		return 42, nil
	}, func(v int, err error) {
		calls++
		result, resErr = v, err
	})

	// Assert
	assert.Equal(t, 0, calls, "completion must not run before the loop is driven")
	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.Drain(ctx))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 42, result)
	assert.NoError(t, resErr)

	queued, inflight := l.Pending()
	assert.Zero(t, queued)
	assert.Zero(t, inflight)
}

func TestGo_WorkPanicBecomesError(t *testing.T) {
	l := New()
	var resErr error

	Go(l, func() (string, error) {
		panic("boom")
	}, func(_ string, err error) {
		resErr = err
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.Drain(ctx))
	require.Error(t, resErr)
	assert.Contains(t, resErr.Error(), "boom")
}

func TestLoop_DrainHonoursContext(t *testing.T) {
	l := New()
	block := make(chan struct{})
	defer close(block)
	Go(l, func() (struct{}, error) {
		<-block
		return struct{}{}, nil
	}, func(struct{}, error) {})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Drain(ctx)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestLoop_HandlerPanicIsRecoveredAndLogged(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	l := New(WithLogger(logger))
	ran := false
	l.Post(func() { panic("handler exploded") })
	l.Post(func() { ran = true })

	// Act
	l.RunPending()

	// Assert
	assert.True(t, ran, "handlers after a panicking one must still run")
	assert.Contains(t, buf.String(), "event loop handler panicked")
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var mu sync.Mutex
	executed := 0

	go func() { done <- l.Run(ctx) }()
	for i := 0; i < 5; i++ {
		l.Post(func() {
			mu.Lock()
			executed++
			mu.Unlock()
		})
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return executed == 5
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoop_SinkReceivesHandlers(t *testing.T) {
	// Arrange
	var (
		mu     sync.Mutex
		routed []Handler
	)
	l := New(WithSink(func(h Handler) {
		mu.Lock()
		routed = append(routed, h)
		mu.Unlock()
	}))
	count := 0

	// Act
	l.Post(func() { count++ })
	Go(l, func() (int, error) { return 1, nil }, func(int, error) { count++ })
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(routed) == 2
	}, 2*time.Second, 5*time.Millisecond)

	// Assert
	queued, _ := l.Pending()
	assert.Zero(t, queued, "sink mode must bypass the internal queue")
	mu.Lock()
	for _, h := range routed {
		l.Exec(h)
	}
	mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestLoop_PostNilIsIgnored(t *testing.T) {
	l := New()

	l.Post(nil)

	queued, _ := l.Pending()
	assert.Zero(t, queued)
}
