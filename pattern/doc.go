// Package pattern decides which sequences of grid points form a legal unlock
// pattern, independently of any session.
//
// A pattern is legal when:
//
//   - every point lies inside the N×N grid;
//   - every consecutive pair is king-move adjacent (gridgraph.IsAdjacent);
//   - no point repeats any earlier point in the sequence.
//
// The empty sequence and a single in-bounds point are trivially legal.
//
// Rejection is data, not control flow: Evaluate returns a Result, and the
// error returned by Validate always reports the same fixed message so hosts can
// show it verbatim. The specific rule that failed stays reachable through
// errors.Is (ErrOutOfBounds, ErrNotAdjacent, ErrRepeatedPoint).
//
// Complexity: Validate is O(L²) in the pattern length L, which is bounded by N².
package pattern
