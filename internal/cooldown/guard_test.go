package cooldown

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestGuard_UnknownIdentityNotSuppressed(t *testing.T) {
	g := New(300 * time.Second)

	if g.Suppressed("Alice") {
		t.Error("identity without a record should not be suppressed")
	}
}

func TestGuard_Window(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		suppressed bool
	}{
		{"immediately", 0, true},
		{"one minute", time.Minute, true},
		{"just before window", 299 * time.Second, true},
		{"at window", 300 * time.Second, false},
		{"after window", 301 * time.Second, false},
		{"next day", 24 * time.Hour, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := newFakeClock()
			g := New(300*time.Second, WithClock(clock.Now))

			g.Mark("Alice")
			clock.Advance(tc.elapsed)

			if got := g.Suppressed("Alice"); got != tc.suppressed {
				t.Errorf("Suppressed after %v = %v; want %v", tc.elapsed, got, tc.suppressed)
			}
		})
	}
}

func TestGuard_PerIdentity(t *testing.T) {
	g := New(time.Minute)

	g.Mark("Alice")

	if !g.Suppressed("Alice") {
		t.Error("Alice should be suppressed")
	}
	if g.Suppressed("Bob") {
		t.Error("Bob should not be affected by Alice's record")
	}
}

func TestGuard_MarkRefreshesWindow(t *testing.T) {
	clock := newFakeClock()
	g := New(300*time.Second, WithClock(clock.Now))

	g.Mark("Alice")
	clock.Advance(200 * time.Second)
	g.Mark("Alice")
	clock.Advance(200 * time.Second)

	if !g.Suppressed("Alice") {
		t.Error("second mark should restart the window")
	}
}

func TestGuard_MarkReturnsClockTime(t *testing.T) {
	clock := newFakeClock()
	g := New(time.Minute, WithClock(clock.Now))

	at := g.Mark("Alice")

	if !at.Equal(clock.Now()) {
		t.Errorf("expected %v, got %v", clock.Now(), at)
	}
	last, ok := g.Last("Alice")
	if !ok || !last.Equal(at) {
		t.Errorf("Last = %v, %v; want %v, true", last, ok, at)
	}
}

func TestGuard_MarkAt(t *testing.T) {
	clock := newFakeClock()
	g := New(time.Minute, WithClock(clock.Now))

	if !g.Now().Equal(clock.Now()) {
		t.Errorf("Now = %v, want %v", g.Now(), clock.Now())
	}

	g.MarkAt("Alice", clock.Now().Add(-2*time.Minute))
	if g.Suppressed("Alice") {
		t.Error("expected Alice marked outside the window to be allowed")
	}

	g.MarkAt("Alice", clock.Now().Add(-30*time.Second))
	if !g.Suppressed("Alice") {
		t.Error("expected Alice marked inside the window to be suppressed")
	}
}

func TestGuard_ConcurrentAccess(t *testing.T) {
	g := New(time.Minute)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("person-%d", i%5)
			g.Mark(name)
			g.Suppressed(name)
		}()
	}
	wg.Wait()

	if g.Len() != 5 {
		t.Errorf("expected 5 entries, got %d", g.Len())
	}
}
