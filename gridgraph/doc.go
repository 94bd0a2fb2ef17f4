// Package gridgraph models the N×N lattice of dots a pattern is drawn on.
//
// What:
//
//   - Point is an immutable (X, Y) pair, comparable and usable as a map key.
//   - Grid fixes the lattice size once and never mutates afterwards.
//   - Points are addressed row-major: top-to-bottom, left-to-right.
//   - Adjacency is the king-move (Moore) neighbourhood: two distinct points
//     whose coordinates differ by at most one on both axes.
//
// Why:
//
//   - Hit-testing walks the lattice in row-major order and the first match
//     wins, so iteration order is part of the contract, not an accident.
//   - IsAdjacent is needed without a grid (validating a stored sequence),
//     so it is a package-level function.
//
// Complexity:
//
//   - New:        O(N²) time and memory (points and neighbour lists).
//   - IsAdjacent: O(1).
//   - Neighbors:  O(1), returns a precomputed slice.
//
// Errors:
//
//   - ErrInvalidSize: the requested size is not positive.
package gridgraph
