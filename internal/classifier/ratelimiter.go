package classifier

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by every inference client that talks to
// the same model server.
type RateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter allows perSecond requests per second with a burst of the same
// size. perSecond <= 0 returns nil, which disables limiting.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		return nil
	}
	interval := time.Second / time.Duration(perSecond)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &RateLimiter{
		tokens:         perSecond,
		maxTokens:      perSecond,
		refillInterval: interval,
		lastRefill:     time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done. A nil limiter never
// blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	for {
		r.mu.Lock()
		r.refill()
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillInterval):
		}
	}
}

func (r *RateLimiter) refill() {
	elapsed := time.Since(r.lastRefill)
	n := int(elapsed / r.refillInterval)
	if n <= 0 {
		return
	}
	r.tokens += n
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
	r.lastRefill = r.lastRefill.Add(time.Duration(n) * r.refillInterval)
}
