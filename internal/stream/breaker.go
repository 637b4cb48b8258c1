package stream

import (
	"sync"
	"time"
)

// Breaker stops publish attempts against an unhealthy stream. After threshold
// consecutive failures it opens for cooldown. Once the cooldown expires a
// single probe is let through; its outcome closes or re-opens the circuit.
type Breaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures  int
	openUntil time.Time
	open      bool
}

// NewBreaker creates a closed breaker. Non-positive arguments fall back to
// 5 failures and a one minute cooldown.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a publish may be attempted.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return true
	}
	now := b.now()
	if now.Before(b.openUntil) {
		return false
	}
	// Half-open: admit this caller and keep the rest out until it reports.
	b.openUntil = now.Add(b.cooldown)
	return true
}

// RecordSuccess resets the failure count. It reports whether this call
// closed an open circuit.
func (b *Breaker) RecordSuccess() (closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	closed = b.open
	b.failures = 0
	b.open = false
	return closed
}

// RecordFailure counts a failure. It reports whether this call opened the
// circuit.
func (b *Breaker) RecordFailure() (opened bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.open {
		b.openUntil = b.now().Add(b.cooldown)
		return false
	}
	if b.failures >= b.threshold {
		b.open = true
		b.openUntil = b.now().Add(b.cooldown)
		return true
	}
	return false
}

func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}
