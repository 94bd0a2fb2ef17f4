package pattern

import (
	"strings"

	"github.com/codeninelabs/cnl-patternlock/gridgraph"
)

// Pattern is an ordered sequence of grid points; order is the drawn stroke.
type Pattern []gridgraph.Point

// Contains reports whether p appears anywhere in the pattern.
func (pt Pattern) Contains(p gridgraph.Point) bool {
	for _, q := range pt {
		if q == p {
			return true
		}
	}
	return false
}

// Clone returns an independent copy. A nil pattern clones to an empty one.
func (pt Pattern) Clone() Pattern {
	out := make(Pattern, len(pt))
	copy(out, pt)
	return out
}

// Last returns the final point and true, or false for an empty pattern.
func (pt Pattern) Last() (gridgraph.Point, bool) {
	if len(pt) == 0 {
		return gridgraph.Point{}, false
	}
	return pt[len(pt)-1], true
}

// String renders the pattern as "(0,0)-(1,1)-(2,2)"; Parse reads it back.
func (pt Pattern) String() string {
	var b strings.Builder
	for i, p := range pt {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// IsValid reports whether seq is a legal pattern on a gridSize×gridSize grid.
// Equivalent to Validate(seq, gridSize) == nil.
func IsValid(seq Pattern, gridSize int) bool {
	return Validate(seq, gridSize) == nil
}

// Validate checks seq against the pattern rules and returns nil or an
// *InvalidPatternError describing the first violation found.
//
// Steps:
//  1. Every point must be in bounds (whole sequence scanned first).
//  2. For each i ≥ 1: seq[i-1] and seq[i] must be adjacent.
//  3. For each i ≥ 1: seq[i] must not occur in seq[0:i].
//
// Complexity: O(L²) time, O(1) extra memory.
func Validate(seq Pattern, gridSize int) error {
	// 1. Bounds
	for i, p := range seq {
		if !gridgraph.InBounds(p, gridSize) {
			return &InvalidPatternError{Cause: ErrOutOfBounds, Index: i, Point: p}
		}
	}

	// 2–3. Adjacency and uniqueness, pairwise
	for i := 1; i < len(seq); i++ {
		cur := seq[i]
		if !gridgraph.IsAdjacent(seq[i-1], cur) {
			return &InvalidPatternError{Cause: ErrNotAdjacent, Index: i, Point: cur}
		}
		if seq[:i].Contains(cur) {
			return &InvalidPatternError{Cause: ErrRepeatedPoint, Index: i, Point: cur}
		}
	}

	return nil
}

// Evaluate validates seq and wraps the outcome as a Result.
func Evaluate(seq Pattern, gridSize int) Result {
	if err := Validate(seq, gridSize); err != nil {
		return Failure(err)
	}
	return Success()
}
