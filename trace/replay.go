package trace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/internal/logging"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

// ErrNoClock is returned when a clear_error event is replayed without a ManualClock.
var ErrNoClock = errors.New("trace: clear_error needs a manual clock")

// ReplayOption configures Replay.
type ReplayOption func(*replayOptions)

type replayOptions struct {
	clock  *ManualClock
	logger *slog.Logger
}

// WithClock supplies the clock that clear_error events advance. It must be
// the clock the session was built with.
func WithClock(c *ManualClock) ReplayOption {
	return func(o *replayOptions) { o.clock = c }
}

// WithLogger logs every replayed event at debug level.
func WithLogger(l *slog.Logger) ReplayOption {
	return func(o *replayOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Replay feeds sc's events to s in order and returns the completions reported
// by each accepted pointer-up. The context is checked before every event; on
// cancellation the completions gathered so far are returned with the error.
//
// Steps:
//  1. move: s.Drag at the position (hit-tested against the session's frames).
//  2. dot: s.Extend at the dot's frame centre with the dot as sole candidate.
//  3. up: s.End; a blocked pointer-up yields no completion.
//  4. reset, set: s.Reset, s.SetPattern.
//  5. clear_error: flush the manual clock so the auto-clear runs.
func Replay(ctx context.Context, s *patternlock.Session, sc Script, opts ...ReplayOption) ([]patternlock.Completion, error) {
	o := replayOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var out []patternlock.Completion
	for i, e := range sc.Events {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("trace: event %d: %w", i, err)
		}

		switch {
		case e.Move != nil:
			step := s.Drag(*e.Move)
			o.logger.Debug("replay move", "index", i, "pos", *e.Move, "step", step.String())

		case e.Dot != nil:
			var pos geometry.Vec
			if r, ok := s.Frame(*e.Dot); ok {
				pos = r.Center()
			}
			step := s.Extend(pos, *e.Dot)
			o.logger.Debug("replay dot", "index", i, "dot", e.Dot.String(), "step", step.String())

		case e.Up:
			c, ok := s.End()
			o.logger.Debug("replay up", "index", i, "accepted", ok)
			if ok {
				out = append(out, c)
			}

		case e.Reset:
			s.Reset()
			o.logger.Debug("replay reset", "index", i)

		case e.Set != nil:
			p, err := pattern.Parse(*e.Set)
			if err != nil {
				return out, fmt.Errorf("trace: event %d: %w", i, err)
			}
			res := s.SetPattern(p)
			o.logger.Debug("replay set", "index", i, "pattern", p.String(), "result", res.String())

		case e.ClearError:
			if o.clock == nil {
				return out, fmt.Errorf("%w: index %d", ErrNoClock, i)
			}
			n := o.clock.Flush()
			o.logger.Debug("replay clear_error", "index", i, "fired", n)

		default:
			return out, fmt.Errorf("%w: index %d", ErrEmptyEvent, i)
		}
	}
	return out, nil
}
