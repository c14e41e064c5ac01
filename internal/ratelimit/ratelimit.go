package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a caller may make another request right now.
type Limiter interface {
	Allow(callerID string) bool
}

// SlidingWindow is an in-memory, per-caller sliding-window limiter. State
// lives for the process lifetime only; losing it on restart is acceptable.
type SlidingWindow struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	requests map[string][]time.Time
	now      func() time.Time
}

// NewSlidingWindow creates a limiter allowing max requests per caller
// within the given window.
func NewSlidingWindow(window time.Duration, max int) *SlidingWindow {
	return &SlidingWindow{
		window:   window,
		max:      max,
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// WithClock replaces the limiter's time source, for tests.
func (l *SlidingWindow) WithClock(now func() time.Time) *SlidingWindow {
	l.now = now
	return l
}

// Allow records a request for the caller and reports whether it is within
// quota. Timestamps older than the window are pruned on every check.
func (l *SlidingWindow) Allow(callerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.requests[callerID][:0]
	for _, t := range l.requests[callerID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.requests[callerID] = recent
		return false
	}

	l.requests[callerID] = append(recent, now)
	return true
}
