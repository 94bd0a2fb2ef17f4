package pattern

import (
	"errors"
	"fmt"

	"github.com/codeninelabs/cnl-patternlock/gridgraph"
)

// InvalidMessage is the human-readable reason reported for every rejected pattern.
const InvalidMessage = "invalid pattern - dots must be adjacent and not repeated"

// Sentinel causes wrapped by InvalidPatternError.
var (
	// ErrOutOfBounds indicates a point outside the grid.
	ErrOutOfBounds = errors.New("pattern: point out of bounds")
	// ErrNotAdjacent indicates two consecutive points more than one king move apart.
	ErrNotAdjacent = errors.New("pattern: consecutive points are not adjacent")
	// ErrRepeatedPoint indicates a point that already appeared earlier.
	ErrRepeatedPoint = errors.New("pattern: point repeated")
	// ErrSyntax indicates text that Parse could not read as a pattern.
	ErrSyntax = errors.New("pattern: syntax error")
)

// InvalidPatternError reports a rejected pattern.
// Error always returns InvalidMessage; Cause, Index and Point say what tripped.
type InvalidPatternError struct {
	Cause error           // one of ErrOutOfBounds, ErrNotAdjacent, ErrRepeatedPoint
	Index int             // position of the offending point in the sequence
	Point gridgraph.Point // the offending point
}

func (e *InvalidPatternError) Error() string {
	return InvalidMessage
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// Detail describes the failing rule and position, for logs rather than users.
func (e *InvalidPatternError) Detail() string {
	return fmt.Sprintf("%v at index %d %v", e.Cause, e.Index, e.Point)
}
