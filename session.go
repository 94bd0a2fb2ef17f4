package patternlock

import (
	"errors"
	"log/slog"
	"sync"
	"weak"

	"github.com/google/uuid"

	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

// Session is the pattern-lock state machine for one widget instance.
//
// All methods are safe to call from multiple goroutines; mu confines the
// mutable fields so the auto-clear timer cannot race the host. Hosts are still
// expected to drive a session from one event loop.
type Session struct {
	mu sync.Mutex

	id   string
	grid *gridgraph.Grid
	opts Options
	log  *slog.Logger

	selected pattern.Pattern
	dots     []bool          // row-major, mirrors membership of selected
	frames   []geometry.Rect // row-major host frames; empty rect = unknown

	pointer    geometry.Vec
	hasPointer bool
	dragging   bool

	showingError    bool
	validationError string
	errTimer        Timer
	errGen          uint64

	pending []func() // hook calls queued under mu, run after unlock
}

// New builds a session for a gridSize×gridSize grid.
// Returns gridgraph.ErrInvalidSize if gridSize is not positive; pattern
// problems are never returned as errors.
func New(gridSize int, opts ...Option) (*Session, error) {
	grid, err := gridgraph.New(gridSize)
	if err != nil {
		return nil, err
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	s := &Session{
		id:     o.ID,
		grid:   grid,
		opts:   o,
		log:    o.Logger.With("session", o.ID),
		dots:   make([]bool, grid.Len()),
		frames: make([]geometry.Rect, grid.Len()),
	}

	if o.HasInitialPattern {
		s.mu.Lock()
		if err := pattern.Validate(o.InitialPattern, gridSize); err != nil {
			s.validationError = err.Error()
			s.raiseErrorLocked(err)
		} else {
			s.installLocked(o.InitialPattern)
		}
		s.unlockAndNotify()
	}

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Grid returns the session's immutable grid.
func (s *Session) Grid() *gridgraph.Grid {
	return s.grid
}

// SetPattern resets the session and displays p.
//
// A valid p becomes the current selection. An invalid p is still shown as the
// selection, without flagging its dots, and the session enters Error: the
// flag clears after ErrorDelay, the validation error stays until Reset.
func (s *Session) SetPattern(p pattern.Pattern) pattern.Result {
	s.mu.Lock()
	s.resetLocked()

	res := pattern.Evaluate(p, s.grid.Size())
	if res.OK() {
		s.installLocked(p)
	} else {
		s.validationError = res.Reason()
		s.raiseErrorLocked(res.Err())
		s.selected = p.Clone()
	}
	s.changedLocked()
	s.unlockAndNotify()

	return res
}

// Reset clears the selection, pointer, error flag, validation error and every
// dot flag, cancels a pending auto-clear and returns the session to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.changedLocked()
	s.unlockAndNotify()
}

// Validate checks the current selection against the pattern rules.
func (s *Session) Validate() pattern.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pattern.Evaluate(s.selected, s.grid.Size())
}

// Close cancels a pending auto-clear. A callback already queued on the host's
// dispatcher becomes a no-op and a raised flag stays up until Reset. The
// session stays usable: errors raised after Close clear themselves as usual.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
}

// State returns Error while input is blocked, Dragging while a drag is in
// progress, and Idle otherwise.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

// Selected returns a copy of the current selection in drawing order.
func (s *Session) Selected() pattern.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected.Clone()
}

// IsSelected reports whether p's dot is flagged as part of the selection.
func (s *Session) IsSelected(p gridgraph.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.grid.InBounds(p) && s.dots[s.grid.Index(p)]
}

// Pointer returns the live pointer position, or false when no drag is active.
func (s *Session) Pointer() (geometry.Vec, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pointer, s.hasPointer
}

// ShowingError reports whether the transient error flag is raised.
func (s *Session) ShowingError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.showingError
}

// ValidationError returns the message of a rejected initial or SetPattern
// pattern, or "" if there is none.
func (s *Session) ValidationError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.validationError
}

// LineHint returns LineError while the error flag is raised.
func (s *Session) LineHint() LineHint {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lineHintLocked()
}

// Snapshot copies the render-relevant state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// SetFrame records the on-screen bounding box of p's dot.
// Out-of-bounds points are ignored.
func (s *Session) SetFrame(p gridgraph.Point, r geometry.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid.InBounds(p) {
		s.frames[s.grid.Index(p)] = r
	}
}

// SetFrames replaces every known frame. Points missing from frames become unknown.
func (s *Session) SetFrames(frames map[gridgraph.Point]geometry.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.frames {
		s.frames[i] = frames[s.grid.Coordinate(i)]
	}
}

// SetLayout assigns frames from a row-major slice such as geometry.Layout returns.
func (s *Session) SetLayout(frames []geometry.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.frames {
		if i < len(frames) {
			s.frames[i] = frames[i]
		} else {
			s.frames[i] = geometry.Rect{}
		}
	}
}

// Frame returns p's frame and whether one is known.
func (s *Session) Frame(p gridgraph.Point) (geometry.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frameLocked(p)
}

//----------------------------------------------------------------------------//
// Locked helpers: callers hold s.mu
//----------------------------------------------------------------------------//

func (s *Session) blockedLocked() bool {
	return s.showingError || s.validationError != ""
}

func (s *Session) stateLocked() State {
	switch {
	case s.blockedLocked():
		return Error
	case s.dragging:
		return Dragging
	default:
		return Idle
	}
}

func (s *Session) lineHintLocked() LineHint {
	if s.showingError {
		return LineError
	}
	return LineNormal
}

func (s *Session) frameLocked(p gridgraph.Point) (geometry.Rect, bool) {
	if !s.grid.InBounds(p) {
		return geometry.Rect{}, false
	}
	r := s.frames[s.grid.Index(p)]
	return r, !r.Empty()
}

// installLocked replaces the selection with p and flags its dots. p must be valid.
func (s *Session) installLocked(p pattern.Pattern) {
	s.selected = p.Clone()
	for _, q := range s.selected {
		s.dots[s.grid.Index(q)] = true
	}
}

// resetLocked clears everything transient and invalidates any pending auto-clear.
func (s *Session) resetLocked() {
	s.selected = s.selected[:0]
	for i := range s.dots {
		s.dots[i] = false
	}
	s.pointer = geometry.Vec{}
	s.hasPointer = false
	s.dragging = false
	s.showingError = false
	s.validationError = ""
	s.stopTimerLocked()
}

func (s *Session) stopTimerLocked() {
	s.errGen++
	if s.errTimer != nil {
		s.errTimer.Stop()
		s.errTimer = nil
	}
}

// raiseErrorLocked sets the error flag and schedules its auto-clear.
// The scheduled callback holds only a weak reference: a session that has been
// dropped by the host is not kept alive by its timer.
func (s *Session) raiseErrorLocked(cause error) {
	s.stopTimerLocked()
	s.showingError = true
	gen := s.errGen

	ref := weak.Make(s)
	dispatch := s.opts.Dispatch
	s.errTimer = s.opts.Clock.AfterFunc(s.opts.ErrorDelay, func() {
		dispatch(func() {
			if live := ref.Value(); live != nil {
				live.clearError(gen)
			}
		})
	})

	reason := pattern.InvalidMessage
	if cause != nil {
		reason = cause.Error()
	}
	attrs := []any{"reason", reason}
	var ipe *pattern.InvalidPatternError
	if errors.As(cause, &ipe) {
		attrs = append(attrs, "detail", ipe.Detail())
	}
	s.log.Info("pattern rejected", attrs...)

	if fn := s.opts.Hooks.OnError; fn != nil {
		s.pending = append(s.pending, func() { fn(reason) })
	}
}

// clearError lowers the error flag if gen is still the current raise.
func (s *Session) clearError(gen uint64) {
	s.mu.Lock()
	if gen != s.errGen || !s.showingError {
		s.mu.Unlock()
		return
	}
	s.showingError = false
	s.errTimer = nil
	s.log.Debug("error cleared")

	if fn := s.opts.Hooks.OnErrorCleared; fn != nil {
		s.pending = append(s.pending, fn)
	}
	s.changedLocked()
	s.unlockAndNotify()
}

func (s *Session) snapshotLocked() Snapshot {
	dots := make([]bool, len(s.dots))
	copy(dots, s.dots)

	return Snapshot{
		State:           s.stateLocked(),
		Selected:        s.selected.Clone(),
		Dots:            dots,
		Pointer:         s.pointer,
		HasPointer:      s.hasPointer,
		ShowingError:    s.showingError,
		ValidationError: s.validationError,
		Line:            s.lineHintLocked(),
	}
}

// changedLocked queues OnChange with a snapshot of the current state.
func (s *Session) changedLocked() {
	if fn := s.opts.Hooks.OnChange; fn != nil {
		snap := s.snapshotLocked()
		s.pending = append(s.pending, func() { fn(snap) })
	}
}

// unlockAndNotify releases s.mu and then runs the queued hooks.
func (s *Session) unlockAndNotify() {
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
}
