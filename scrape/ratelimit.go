package scrape

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/FurryCoders/faapi"
)

var _ faapi.Limiter = (*KeyLimiter)(nil)

// KeyLimiter provides per-key rate limiting using token buckets. It creates
// a separate limiter for each key, so pacing one client or host never
// blocks another.
type KeyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewKeyLimiter creates a new KeyLimiter with the given requests per second
// limit. Each key gets its own limiter with a burst of 1 (no bursting).
func NewKeyLimiter(rps float64) *KeyLimiter {
	return &KeyLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request for the key.
// Returns an error if the context is canceled before the wait completes.
func (l *KeyLimiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
