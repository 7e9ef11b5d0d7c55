package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	expiresAt  time.Time
}

// MemoryStore keeps buckets in a map. Idle buckets are dropped lazily once
// they would have refilled completely.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	sweeps  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bucket)}
}

// sweepEvery is the number of Consume calls between expiry sweeps.
const sweepEvery = 1024

func (s *MemoryStore) Consume(_ context.Context, key string, n int, cfg Config, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sweeps++; s.sweeps >= sweepEvery {
		s.sweeps = 0
		for k, b := range s.buckets {
			if now.After(b.expiresAt) {
				delete(s.buckets, k)
			}
		}
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		s.buckets[key] = b
	}

	if intervals := int(now.Sub(b.lastRefill) / cfg.RefillInterval); intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
	}

	allowed := b.tokens >= n
	if allowed {
		b.tokens -= n
	}
	b.expiresAt = now.Add(cfg.fullRefill())

	return Result{
		Allowed:   allowed,
		Limit:     cfg.Capacity,
		Remaining: b.tokens,
		ResetAt:   b.lastRefill.Add(cfg.RefillInterval),
	}, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}
