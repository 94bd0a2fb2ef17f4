package patternlock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

// fakeClock fires timers only when Advance moves time past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) patternlock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves time forward by d and runs every timer now due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// pending counts timers that have neither fired nor been stopped.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Canvas used throughout: 3×3 dots, 40 units wide, centred at 100/200/300.
const (
	canvas  = 400.0
	dotSize = 40.0
)

// center returns the screen centre of p's dot on the test canvas.
func center(p gridgraph.Point) geometry.Vec {
	return geometry.V(float64(p.X+1)*100, float64(p.Y+1)*100)
}

func pts(xy ...int) pattern.Pattern {
	out := make(pattern.Pattern, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, gridgraph.Pt(xy[i], xy[i+1]))
	}
	return out
}

// newSession builds a 3×3 session with laid-out frames and a fake clock.
func newSession(t *testing.T, opts ...patternlock.Option) (*patternlock.Session, *fakeClock) {
	t.Helper()

	clk := &fakeClock{}
	all := append([]patternlock.Option{patternlock.WithClock(clk), patternlock.WithID("test")}, opts...)
	s, err := patternlock.New(3, all...)
	require.NoError(t, err)
	s.SetLayout(geometry.Layout(3, canvas, canvas, dotSize))

	return s, clk
}

// draw feeds p through Drag one dot centre at a time.
func draw(s *patternlock.Session, p pattern.Pattern) {
	for _, q := range p {
		s.Drag(center(q))
	}
}
