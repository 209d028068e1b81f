package cache

import (
	"context"
	"sync"
	"time"

	"github.com/robokrystal/stgmonitoradar/internal/platform/resilience"
)

// Snapshot caches a single value with a TTL. It backs the match-list
// cache: fresh reads are served from memory, cold or stale reads run
// the loader, and concurrent refreshes for the same snapshot collapse
// into one upstream call. The clock is injected for testability.
type Snapshot[T any] struct {
	mu        sync.RWMutex
	value     T
	hasValue  bool
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
	flight    resilience.SingleFlight
}

// NewSnapshot builds a snapshot with the given TTL. A nil clock means
// time.Now.
func NewSnapshot[T any](ttl time.Duration, now func() time.Time) *Snapshot[T] {
	if now == nil {
		now = time.Now
	}
	return &Snapshot[T]{
		ttl: ttl,
		now: now,
	}
}

// Fresh reports whether the cached value can be served without a
// refresh.
func (s *Snapshot[T]) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.freshLocked()
}

func (s *Snapshot[T]) freshLocked() bool {
	if !s.hasValue {
		return false
	}
	if s.ttl <= 0 {
		return true
	}
	return s.now().Sub(s.fetchedAt) < s.ttl
}

// Peek returns the last stored value and its fetch time regardless of
// freshness. ok is false before the first successful refresh.
func (s *Snapshot[T]) Peek() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.fetchedAt, s.hasValue
}

// Age is the time elapsed since the last successful refresh. Before
// the first refresh, and after Invalidate, the zero fetch time makes
// the age large enough that any TTL comparison reads as stale.
func (s *Snapshot[T]) Age() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Sub(s.fetchedAt)
}

// Invalidate forces the next read into a refresh without touching the
// stored value, so a failed refresh can still fall back to it.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// GetOrRefresh returns the cached value when fresh, otherwise runs the
// loader synchronously and stores its result. Concurrent stale reads
// share one loader call. On loader failure nothing is stored; the
// caller decides whether to fall back to Peek.
func (s *Snapshot[T]) GetOrRefresh(ctx context.Context, loader func(context.Context) (T, error)) (T, error) {
	s.mu.RLock()
	if s.freshLocked() {
		value := s.value
		s.mu.RUnlock()
		return value, nil
	}
	s.mu.RUnlock()

	out, err, _ := s.flight.Do("snapshot", func() (any, error) {
		s.mu.RLock()
		if s.freshLocked() {
			value := s.value
			s.mu.RUnlock()
			return value, nil
		}
		s.mu.RUnlock()

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}

		s.mu.Lock()
		s.value = loaded
		s.hasValue = true
		s.fetchedAt = s.now()
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	value, _ := out.(T)
	return value, nil
}
