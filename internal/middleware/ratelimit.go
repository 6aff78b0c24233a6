package middleware

import (
	"sync"
	"time"
)

// RateLimiter is a per-client token bucket. Each client starts with burst
// tokens and earns one back every refill interval, up to burst.
// Safe for concurrent use.
type RateLimiter struct {
	buckets map[string]*bucket
	mu      sync.Mutex

	burst  int
	refill time.Duration
	now    func() time.Time

	sweep *time.Ticker
	stop  chan struct{}
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// idleAfter is how long a full-rate bucket may sit unused before it is swept.
const idleAfter = time.Hour

// NewRateLimiter creates a limiter and starts its background sweep.
// Call Stop to release it.
//
// Example:
//
//	// 30 posts back to back, then one every 2 seconds
//	limiter := NewRateLimiter(30, 2*time.Second)
func NewRateLimiter(burst int, refill time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		burst:   burst,
		refill:  refill,
		now:     time.Now,
		sweep:   time.NewTicker(10 * time.Minute),
		stop:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow takes one token from the client's bucket and reports whether one was available.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[client]
	if !ok {
		rl.buckets[client] = &bucket{tokens: rl.burst - 1, lastRefill: now}
		return rl.burst > 0
	}

	if earned := int(now.Sub(b.lastRefill) / rl.refill); earned > 0 {
		b.tokens = min(b.tokens+earned, rl.burst)
		b.lastRefill = b.lastRefill.Add(time.Duration(earned) * rl.refill)
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Reset forgets a client's bucket.
func (rl *RateLimiter) Reset(client string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, client)
}

// Stop ends the background sweep.
func (rl *RateLimiter) Stop() {
	rl.sweep.Stop()
	close(rl.stop)
}

func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.sweep.C:
			rl.mu.Lock()
			now := rl.now()
			for client, b := range rl.buckets {
				if now.Sub(b.lastRefill) > idleAfter {
					delete(rl.buckets, client)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
