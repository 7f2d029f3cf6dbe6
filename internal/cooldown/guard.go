// Package cooldown suppresses repeated attendance for the same identity within
// a time window.
package cooldown

import (
	"sync"
	"time"
)

// Guard maps identities to the time their attendance was last recorded.
// An identity is suppressed while less than the window has passed since then.
// Entries are never expired; their effect lapses with time.
type Guard struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

// Option configures a Guard.
type Option func(*Guard)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// New creates a guard with the given window.
func New(window time.Duration, opts ...Option) *Guard {
	g := &Guard{
		window: window,
		now:    time.Now,
		last:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Window returns the suppression window.
func (g *Guard) Window() time.Duration {
	return g.window
}

// Suppressed reports whether attendance for name was recorded within the window.
func (g *Guard) Suppressed(name string) bool {
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[name]
	return ok && now.Sub(last) < g.window
}

// Now returns the guard's current time.
func (g *Guard) Now() time.Time {
	return g.now()
}

// Mark records attendance for name at the current time and returns that time.
func (g *Guard) Mark(name string) time.Time {
	now := g.now()
	g.MarkAt(name, now)
	return now
}

// MarkAt records attendance for name at the given time.
func (g *Guard) MarkAt(name string, at time.Time) {
	g.mu.Lock()
	g.last[name] = at
	g.mu.Unlock()
}

// Last returns when attendance for name was last recorded.
func (g *Guard) Last(name string) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[name]
	return last, ok
}

// Len returns the number of identities with a recorded attendance.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.last)
}
