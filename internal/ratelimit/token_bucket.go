package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limit describes a token bucket: Requests tokens refilled evenly over Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Storage is an interface for storing and retrieving token bucket state.
// Implementations must be safe for concurrent use.
type Storage interface {
	Allow(ctx context.Context, key string, limit Limit) (bool, error)
}

// tokenBucket represents a single token bucket for rate limiting.
type tokenBucket struct {
	mu             sync.Mutex
	tokens         float64
	lastRefill     time.Time
	capacity       float64
	refillRate     float64 // tokens per second
	windowDuration time.Duration
}

// consume attempts to consume the requested number of tokens.
// Returns true if tokens were available and consumed, false otherwise.
func (tb *tokenBucket) consume(tokens float64) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()

	// Refill tokens based on elapsed time
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tokensToAdd := elapsed * tb.refillRate
	tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
	tb.lastRefill = now

	// Check if we have enough tokens
	if tb.tokens >= tokens {
		tb.tokens -= tokens
		return true
	}

	return false
}
