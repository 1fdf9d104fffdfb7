package lockout

import (
	"context"
	"sync"
	"time"

	"custody/pkg/requestcontext"
)

// sweepInterval bounds how often RecordFailure walks the map for expired counters.
const sweepInterval = time.Minute

// MemoryStore implements Store in process. Counters are not shared between replicas;
// use RedisStore for that.
type MemoryStore struct {
	mu        sync.Mutex
	counters  map[string]*counter
	nextSweep time.Time
}

type counter struct {
	failures  int
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]*counter)}
}

func (s *MemoryStore) RecordFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(sweepInterval)
	}

	c, ok := s.counters[key]
	if !ok || !now.Before(c.expiresAt) {
		c = &counter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}
	c.failures++
	return c.failures, nil
}

func (s *MemoryStore) Failures(ctx context.Context, key string) (int, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok {
		return 0, nil
	}
	if !now.Before(c.expiresAt) {
		delete(s.counters, key)
		return 0, nil
	}
	return c.failures, nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, key)
	return nil
}

// Len returns the number of live or not yet swept counters.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}

// sweep drops expired counters. Caller holds mu.
func (s *MemoryStore) sweep(now time.Time) {
	for key, c := range s.counters {
		if !now.Before(c.expiresAt) {
			delete(s.counters, key)
		}
	}
}
