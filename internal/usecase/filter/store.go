// Package filter owns the persisted category/language filter shared by every view.
//
// Store is the single writer of that state. Set persists before it publishes,
// so a subscriber that re-reads storage always observes the new value.
package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newsflix/internal/domain/entity"
	"newsflix/internal/observability/metrics"
	"newsflix/internal/repository"
)

// StorageKey is the fixed name of the persisted filter record.
const StorageKey = "newsflix.filters"

// Store holds the current FilterState and its subscribers.
type Store struct {
	repo   repository.PreferenceRepository
	logger *slog.Logger

	mu      sync.Mutex
	current entity.FilterState
	subs    []*subscription
}

type subscription struct {
	fn func(entity.FilterState)
}

// NewStore creates a Store and initializes it from repo.
// It never fails: unreadable or invalid storage yields the default state.
func NewStore(ctx context.Context, repo repository.PreferenceRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{repo: repo, logger: logger}
	s.current = s.Load(ctx)
	return s
}

// Load reads the persisted state. Missing, malformed, partial or unknown
// values all return entity.DefaultFilterState; the cause is logged.
func (s *Store) Load(ctx context.Context) entity.FilterState {
	start := time.Now()
	raw, found, err := s.repo.Get(ctx, StorageKey)
	metrics.RecordStorageOperation("get", time.Since(start), err)

	if err != nil {
		s.logger.Warn("failed to read filter state, using default",
			slog.String("key", StorageKey),
			slog.Any("error", err))
		return entity.DefaultFilterState()
	}
	if !found {
		return entity.DefaultFilterState()
	}

	var state entity.FilterState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("malformed filter state, using default",
			slog.String("key", StorageKey),
			slog.Any("error", err))
		return entity.DefaultFilterState()
	}
	if err := state.Validate(); err != nil {
		s.logger.Warn("invalid filter state, using default",
			slog.String("key", StorageKey),
			slog.Any("error", err))
		return entity.DefaultFilterState()
	}
	return state
}

// Current returns the in-memory state.
func (s *Store) Current() entity.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set merges patch into the current state, persists the merged state and
// then calls every subscriber in registration order before returning.
// Identical states are still published.
//
// If the merged state is invalid or cannot be persisted, the current state
// is left unchanged, nothing is published and the error is returned.
func (s *Store) Set(ctx context.Context, patch entity.FilterPatch) (entity.FilterState, error) {
	s.mu.Lock()
	next := s.current.Merge(patch)
	s.mu.Unlock()

	if err := next.Validate(); err != nil {
		return s.Current(), fmt.Errorf("set filters: %w", err)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return s.Current(), fmt.Errorf("set filters: encode: %w", err)
	}

	start := time.Now()
	err = s.repo.Put(ctx, StorageKey, raw)
	metrics.RecordStorageOperation("put", time.Since(start), err)
	if err != nil {
		return s.Current(), fmt.Errorf("set filters: persist: %w", err)
	}

	s.mu.Lock()
	s.current = next
	subs := append([]*subscription(nil), s.subs...)
	s.mu.Unlock()

	metrics.RecordFilterChange(next)
	s.logger.Debug("filters updated",
		slog.String("category", string(next.Category)),
		slog.String("language", string(next.Language)),
		slog.Int("subscribers", len(subs)))

	for _, sub := range subs {
		sub.fn(next)
	}
	return next, nil
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn func(entity.FilterState)) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, existing := range s.subs {
			if existing == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
