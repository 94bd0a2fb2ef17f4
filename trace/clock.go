package trace

import (
	"sort"
	"sync"
	"time"

	patternlock "github.com/codeninelabs/cnl-patternlock"
)

// ManualClock is a patternlock.Clock whose time only moves when told to.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clk  *ManualClock
	at   time.Duration
	f    func()
	done bool
}

// NewManualClock returns a clock at time zero with no pending timers.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) patternlock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{clk: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()

	active := !t.done
	t.done = true
	return active
}

// Now returns the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending reports how many timers are waiting to fire.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves time forward by d and runs every timer now due, in deadline
// order. Callbacks run without the clock's lock held.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	due := c.collectLocked()
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Flush advances to the latest pending deadline, firing everything queued.
// It returns the number of callbacks run.
func (c *ManualClock) Flush() int {
	c.mu.Lock()
	for _, t := range c.timers {
		if !t.done && t.at > c.now {
			c.now = t.at
		}
	}
	due := c.collectLocked()
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

func (c *ManualClock) collectLocked() []*manualTimer {
	var due, rest []*manualTimer
	for _, t := range c.timers {
		switch {
		case t.done:
		case t.at <= c.now:
			t.done = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	c.timers = rest

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	return due
}
