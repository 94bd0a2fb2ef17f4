package patternlock

import (
	"slices"

	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

// Extend handles one pointer move.
//
// The pointer position is always recorded. The first candidate that is in
// bounds, not yet selected, and either starts the pattern or is adjacent to
// the last selected dot is appended; at most one dot is added per call.
// Candidates are the dots the host hit-tested under the pointer, in the
// host's priority order.
//
// When nothing is appended and at least two dots are selected, the backtrack
// rule runs: if the angle between the last segment (prev→last) and the drag
// vector (prev→pointer) exceeds BacktrackAngle and the pointer is nearer prev
// than last, last is dropped. Backtracking needs frames for both dots.
//
// Returns StepIgnored without touching anything while the session is in Error.
func (s *Session) Extend(pos geometry.Vec, candidates ...gridgraph.Point) Step {
	s.mu.Lock()
	if s.blockedLocked() {
		s.mu.Unlock()
		return StepIgnored
	}

	s.dragging = true
	s.pointer = pos
	s.hasPointer = true

	step := s.extendLocked(pos, candidates)
	s.changedLocked()
	s.unlockAndNotify()

	return step
}

// Drag hit-tests pos against the registered frames in row-major order and
// passes every containing dot to Extend as a candidate.
func (s *Session) Drag(pos geometry.Vec) Step {
	s.mu.Lock()
	var hits []gridgraph.Point
	for i, r := range s.frames {
		if r.Contains(pos) {
			hits = append(hits, s.grid.Coordinate(i))
		}
	}
	s.mu.Unlock()

	return s.Extend(pos, hits...)
}

// End handles pointer-up. It validates the selection, resets the sequence,
// pointer and dot flags, and raises the error flag if the pattern was
// rejected. The returned Completion (also passed to Hooks.OnComplete) is the
// only record of the attempt once End returns.
//
// Returns false, and changes nothing, while the session is in Error.
func (s *Session) End() (Completion, bool) {
	s.mu.Lock()
	if s.blockedLocked() {
		s.mu.Unlock()
		return Completion{}, false
	}

	// 1. Capture before clearing; the host reads these, not the session
	c := Completion{
		SessionID: s.id,
		Pattern:   s.selected.Clone(),
	}
	c.Result = pattern.Evaluate(c.Pattern, s.grid.Size())

	// 2. Clear transient state
	s.resetLocked()

	// 3. Report, then flag a rejection
	s.log.Info("pattern complete", "length", len(c.Pattern), "result", c.Result.Outcome().String())
	if fn := s.opts.Hooks.OnComplete; fn != nil {
		s.pending = append(s.pending, func() { fn(c) })
	}
	if !c.Result.OK() {
		s.raiseErrorLocked(c.Result.Err())
	}

	s.changedLocked()
	s.unlockAndNotify()

	return c, true
}

func (s *Session) extendLocked(pos geometry.Vec, candidates []gridgraph.Point) Step {
	last, hasLast := s.selected.Last()
	for _, c := range candidates {
		if !s.grid.InBounds(c) || s.dots[s.grid.Index(c)] {
			continue
		}
		if hasLast && !slices.Contains(s.grid.Neighbors(last), c) {
			continue
		}
		s.selectLocked(c, pos)
		return StepSelected
	}

	if s.backtrackLocked(pos) {
		return StepBacktracked
	}
	return StepMoved
}

func (s *Session) selectLocked(p gridgraph.Point, pos geometry.Vec) {
	s.selected = append(s.selected, p)
	s.dots[s.grid.Index(p)] = true
	s.log.Debug("dot selected", "point", p.String(), "length", len(s.selected))

	if fn := s.opts.Hooks.OnSelect; fn != nil {
		ev := DotEvent{SessionID: s.id, Point: p, Length: len(s.selected), Pointer: pos}
		s.pending = append(s.pending, func() { fn(ev) })
	}
}

// backtrackLocked applies the reversal rule and reports whether a dot was dropped.
func (s *Session) backtrackLocked(pos geometry.Vec) bool {
	n := len(s.selected)
	if n < 2 {
		return false
	}
	last, prev := s.selected[n-1], s.selected[n-2]

	lastFrame, ok := s.frameLocked(last)
	if !ok {
		return false
	}
	prevFrame, ok := s.frameLocked(prev)
	if !ok {
		return false
	}
	lastCenter, prevCenter := lastFrame.Center(), prevFrame.Center()

	patternVec := lastCenter.Sub(prevCenter)
	dragVec := pos.Sub(prevCenter)
	angle := geometry.AngleBetween(patternVec, dragVec)

	if angle <= s.opts.BacktrackAngle || pos.Dist(prevCenter) >= pos.Dist(lastCenter) {
		return false
	}

	s.selected = s.selected[:n-1]
	if s.grid.InBounds(last) {
		s.dots[s.grid.Index(last)] = false
	}
	s.log.Debug("dot backtracked", "point", last.String(), "angle", angle, "length", len(s.selected))

	if fn := s.opts.Hooks.OnBacktrack; fn != nil {
		ev := DotEvent{SessionID: s.id, Point: last, Length: len(s.selected), Pointer: pos}
		s.pending = append(s.pending, func() { fn(ev) })
	}
	return true
}
