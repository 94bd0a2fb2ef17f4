package patternlock

import (
	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

// State is the coarse state of a Session.
type State int

const (
	// Idle: no drag in progress. A seeded pattern may be on display.
	Idle State = iota
	// Dragging: the pointer is down; the selection may still be empty.
	Dragging
	// Error: the last attempt (or a supplied pattern) was rejected; input is ignored.
	Error
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Step reports what a single pointer move did.
type Step int

const (
	// StepIgnored: input was blocked by an error.
	StepIgnored Step = iota
	// StepMoved: only the pointer position changed.
	StepMoved
	// StepSelected: a dot was appended to the selection.
	StepSelected
	// StepBacktracked: the last dot was removed from the selection.
	StepBacktracked
)

// String returns the lowercase step name.
func (s Step) String() string {
	switch s {
	case StepIgnored:
		return "ignored"
	case StepMoved:
		return "moved"
	case StepSelected:
		return "selected"
	case StepBacktracked:
		return "backtracked"
	default:
		return "unknown"
	}
}

// LineHint tells the host which colour to draw the pattern line with.
type LineHint int

const (
	LineNormal LineHint = iota
	LineError
)

// DotEvent describes a dot entering or leaving the selection.
type DotEvent struct {
	SessionID string
	Point     gridgraph.Point
	Length    int          // selection length after the change
	Pointer   geometry.Vec // pointer position that caused it
}

// Completion is reported once per pointer-up. The session has already been
// reset when it is delivered, so it carries the pattern as drawn.
type Completion struct {
	SessionID string
	Pattern   pattern.Pattern
	Result    pattern.Result
}

// Snapshot is a read-only copy of everything a host needs to render.
type Snapshot struct {
	State           State
	Selected        pattern.Pattern
	Dots            []bool // row-major selection flags
	Pointer         geometry.Vec
	HasPointer      bool
	ShowingError    bool
	ValidationError string
	Line            LineHint
}
