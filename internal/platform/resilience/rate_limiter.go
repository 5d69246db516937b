package resilience

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-key limiter for abuse mitigation. State
// lives in process memory, so with several instances behind a balancer the
// effective limit is per instance; callers must not rely on it for
// correctness.
type RateLimiter struct {
	mu sync.Mutex

	limit   int
	window  time.Duration
	windows map[string]*rateWindow
	now     func() time.Time

	lastPrune time.Time
}

type rateWindow struct {
	start time.Time
	count int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &RateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// Allow reports whether one more request under key fits in the current
// window.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &rateWindow{start: now, count: 1}
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++

	return true
}

// pruneLocked drops expired windows at most once per window length so the map
// does not grow with one entry per client forever.
func (l *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < l.window {
		return
	}
	l.lastPrune = now

	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}
