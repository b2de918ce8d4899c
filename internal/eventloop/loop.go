// Package eventloop runs view handlers on a single goroutine.
//
// Every handler posted to a Loop, and every completion of a task started with
// Go, runs on the goroutine that drives the loop (Run or Drain, or the
// bubbletea program when a sink is installed). Controllers built on top of it
// never need locks around their own state.
package eventloop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Handler is one unit of work executed on the loop goroutine.
type Handler func()

// Loop is an unbounded FIFO of handlers plus a count of background tasks
// whose completions have not been queued yet.
type Loop struct {
	mu       sync.Mutex
	queue    []Handler
	inflight int
	sink     func(Handler)
	wake     chan struct{}
	logger   *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used to report recovered handler panics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSink routes every handler to fn instead of the internal queue.
// fn must not block and must arrange for the handler to run on the UI
// goroutine, for example by queueing it for a bubbletea program.
func WithSink(fn func(Handler)) Option {
	return func(l *Loop) {
		l.sink = fn
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetSink installs or clears the sink after construction.
// Handlers already queued stay in the queue.
func (l *Loop) SetSink(fn func(Handler)) {
	l.mu.Lock()
	l.sink = fn
	l.mu.Unlock()
}

// Post schedules fn to run on the loop goroutine.
// It is safe to call from any goroutine.
func (l *Loop) Post(fn Handler) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	sink := l.sink
	if sink == nil {
		l.queue = append(l.queue, fn)
	}
	l.mu.Unlock()

	if sink != nil {
		sink(fn)
		return
	}
	l.signal()
}

// Go runs work on a new goroutine and posts done with its result to l.
// done always runs on the loop goroutine, never concurrently with other handlers.
func Go[T any](l *Loop, work func() (T, error), done func(T, error)) {
	l.mu.Lock()
	l.inflight++
	l.mu.Unlock()

	go func() {
		var (
			result T
			err    error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("task panicked: %v", r)
				}
			}()
			result, err = work()
		}()
		l.finish(func() { done(result, err) })
	}()
}

// finish queues a completion and releases its inflight slot under one lock,
// so Drain never observes an empty queue with the completion still pending.
func (l *Loop) finish(fn Handler) {
	l.mu.Lock()
	sink := l.sink
	if sink == nil {
		l.queue = append(l.queue, fn)
	}
	l.inflight--
	l.mu.Unlock()

	if sink != nil {
		sink(fn)
	}
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending reports the number of queued handlers and unfinished tasks.
func (l *Loop) Pending() (queued, inflight int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue), l.inflight
}

// RunPending executes every handler queued so far, including handlers they
// post, and returns the number executed.
func (l *Loop) RunPending() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		l.exec(fn)
		n++
	}
}

// Run executes handlers until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drain executes handlers until the queue is empty and no task is in flight.
// It is the plain-mode counterpart of Run, used by one-shot commands and tests.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		l.RunPending()

		l.mu.Lock()
		idle := len(l.queue) == 0 && l.inflight == 0
		l.mu.Unlock()
		if idle {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) pop() (Handler, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

// exec runs fn and recovers a panic so one faulty handler cannot stop the loop.
func (l *Loop) exec(fn Handler) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop handler panicked",
				slog.Any("panic", r))
		}
	}()
	fn()
}

// Exec runs fn with the same panic recovery as the loop itself.
// Sinks call it when they finally execute a routed handler.
func (l *Loop) Exec(fn Handler) {
	l.exec(fn)
}
