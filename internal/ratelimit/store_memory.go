package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local sliding window. Limits are not shared
// between replicas; use RedisStore for that.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, windows: make(map[string][]time.Time)}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stamps := prune(s.windows[key], now.Add(-window))
	res := Result{Limit: limit, ResetAt: now.Add(window)}
	if len(stamps) > 0 {
		res.ResetAt = stamps[0].Add(window)
	}
	if len(stamps) >= limit {
		s.windows[key] = stamps
		return res, nil
	}

	stamps = append(stamps, now)
	s.windows[key] = stamps
	res.Allowed = true
	res.Remaining = limit - len(stamps)
	res.ResetAt = stamps[0].Add(window)
	return res, nil
}

// prune drops timestamps at or before cutoff. stamps is sorted.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	return stamps[i:]
}
