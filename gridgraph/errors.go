package gridgraph

import "errors"

var (
	// ErrInvalidSize indicates a grid was requested with a non-positive size.
	ErrInvalidSize = errors.New("gridgraph: grid size must be positive")
)
