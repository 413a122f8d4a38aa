package http

import (
	"math"
	"sync"
	"time"
)

// minSweepInterval bounds how often idle buckets are swept when the window is
// very short.
const minSweepInterval = time.Minute

type quota struct {
	remaining   int
	windowStart time.Time
}

// RateLimiter grants every client key capacity requests per window. The
// budget resets in full once the key's window has elapsed.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	quotas   map[string]*quota
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		quotas:   make(map[string]*quota),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(max(r.window, minSweepInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

// sweep drops keys whose window closed more than a full window ago.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, q := range r.quotas {
		if now.Sub(q.windowStart) > 2*r.window {
			delete(r.quotas, key)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow spends one request from key's budget. When the budget is exhausted it
// reports how long until the window resets.
func (r *RateLimiter) Allow(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	q, ok := r.quotas[key]
	if !ok || now.Sub(q.windowStart) >= r.window {
		q = &quota{remaining: r.capacity, windowStart: now}
		r.quotas[key] = q
	}

	if q.remaining <= 0 {
		return false, q.windowStart.Add(r.window).Sub(now)
	}
	q.remaining--
	return true, 0
}

// retryAfterSeconds rounds a wait up to whole seconds for the Retry-After
// header.
func retryAfterSeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}
