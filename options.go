package patternlock

import (
	"log/slog"
	"time"

	"github.com/codeninelabs/cnl-patternlock/internal/logging"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

const (
	// DefaultErrorDelay is how long the error flag stays raised.
	DefaultErrorDelay = time.Second
	// DefaultBacktrackAngle is the reversal angle, in degrees, past which the
	// last dot is dropped.
	DefaultBacktrackAngle = 150.0
)

// Option configures a Session at construction.
type Option func(*Options)

// Options holds Session configuration.
type Options struct {
	// InitialPattern is seeded at construction when HasInitialPattern is set.
	InitialPattern    pattern.Pattern
	HasInitialPattern bool

	// ErrorDelay is how long the error flag stays raised before clearing itself.
	ErrorDelay time.Duration

	// BacktrackAngle is the minimum angle, in degrees, between the last segment
	// and the pointer's drag vector for a reversal to drop the last dot.
	BacktrackAngle float64

	// Clock schedules the error auto-clear.
	Clock Clock

	// Dispatch runs the auto-clear callback. Hosts with an event loop pass a
	// function that posts onto it; the default runs the callback in place.
	Dispatch func(func())

	// Logger receives debug and info records; defaults to a no-op logger.
	Logger *slog.Logger

	// Hooks are notified after every change.
	Hooks Hooks

	// ID labels the session in logs, events and completions; a random UUID by default.
	ID string
}

// DefaultOptions returns Options with:
//   - no initial pattern
//   - ErrorDelay = 1s, BacktrackAngle = 150°
//   - the system clock and in-place dispatch
//   - a no-op logger and no hooks
func DefaultOptions() Options {
	return Options{
		ErrorDelay:     DefaultErrorDelay,
		BacktrackAngle: DefaultBacktrackAngle,
		Clock:          SystemClock(),
		Dispatch:       func(f func()) { f() },
		Logger:         logging.NewNop(),
	}
}

// WithInitialPattern seeds the session with p. An invalid p is not seeded;
// the session starts in Error instead.
func WithInitialPattern(p pattern.Pattern) Option {
	return func(o *Options) {
		o.InitialPattern = p.Clone()
		o.HasInitialPattern = true
	}
}

// WithErrorDelay overrides how long the error flag stays raised. Non-positive values are ignored.
func WithErrorDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.ErrorDelay = d
		}
	}
}

// WithBacktrackAngle overrides the reversal threshold in degrees.
// Values outside [0, 180) are ignored.
func WithBacktrackAngle(deg float64) Option {
	return func(o *Options) {
		if deg >= 0 && deg < 180 {
			o.BacktrackAngle = deg
		}
	}
}

// WithClock substitutes the clock used for the error auto-clear.
func WithClock(c Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithDispatcher routes the auto-clear callback through dispatch, so it runs
// on the host's own event loop. Without one the clear, and the OnErrorCleared
// and OnChange hooks it triggers, run on the clock's timer goroutine.
func WithDispatcher(dispatch func(func())) Option {
	return func(o *Options) {
		if dispatch != nil {
			o.Dispatch = dispatch
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithHooks installs change callbacks. Use CombineHooks to install several.
func WithHooks(h Hooks) Option {
	return func(o *Options) {
		o.Hooks = h
	}
}

// WithID fixes the session identifier.
func WithID(id string) Option {
	return func(o *Options) {
		o.ID = id
	}
}
