package githubrepo

import (
	"context"
	"sync"
	"time"
)

// Authenticated GitHub clients get 5000 requests per hour.
const (
	defaultMaxRequests = 5000
	defaultWindow      = time.Hour
)

// RateLimiter is a token bucket sized to the GitHub API quota. Safe for
// concurrent use.
type RateLimiter struct {
	now        func() time.Time
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter creates a limiter allowing maxRequests per window.
// Non-positive arguments get the GitHub defaults.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}

	if window <= 0 {
		window = defaultWindow
	}

	return &RateLimiter{
		now:        time.Now,
		tokens:     maxRequests,
		maxTokens:  maxRequests,
		refillRate: window / time.Duration(maxRequests),
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.take() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillRate):
		}
	}
}

// Available returns the current token count after refilling.
func (r *RateLimiter) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()

	return r.tokens
}

// take refills the bucket and consumes one token if possible.
func (r *RateLimiter) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()

	if r.tokens > 0 {
		r.tokens--

		return true
	}

	return false
}

// refill credits tokens accrued since the last refill. Callers hold the lock.
func (r *RateLimiter) refill() {
	elapsed := r.now().Sub(r.lastRefill)

	credit := int(elapsed / r.refillRate)
	if credit == 0 {
		return
	}

	r.tokens = min(r.tokens+credit, r.maxTokens)
	r.lastRefill = r.now()
}
