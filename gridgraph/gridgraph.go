package gridgraph

// New builds an immutable size×size grid.
// Returns ErrInvalidSize if size is not positive.
// Complexity: O(size²) time and memory.
func New(size int) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	// 1. Lay out points row by row, matching construction order elsewhere
	points := make([]Point, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			points = append(points, Point{X: x, Y: y})
		}
	}

	g := &Grid{size: size, points: points}

	// 2. Precompute neighbour lists so Neighbors never allocates
	g.neighbors = make([][]Point, len(points))
	for i, p := range points {
		nbs := make([]Point, 0, len(kingOffsets))
		for _, d := range kingOffsets {
			q := Point{X: p.X + d[0], Y: p.Y + d[1]}
			if g.InBounds(q) {
				nbs = append(nbs, q)
			}
		}
		g.neighbors[i] = nbs
	}

	return g, nil
}

// Size returns N, the number of points along each axis.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the total number of points, N².
func (g *Grid) Len() int {
	return len(g.points)
}

// InBounds reports whether p lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(p Point) bool {
	return InBounds(p, g.size)
}

// InBounds reports whether p lies within a size×size grid.
func InBounds(p Point, size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Index maps p to its row-major index: Y*N + X.
// The result is only meaningful when InBounds(p) holds.
// Complexity: O(1).
func (g *Grid) Index(p Point) int {
	return p.Y*g.size + p.X
}

// Coordinate converts a row-major index back to its point.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Point {
	return Point{X: idx % g.size, Y: idx / g.size}
}

// Points returns every point in row-major order.
// The returned slice is shared; callers must not modify it.
func (g *Grid) Points() []Point {
	return g.points
}

// Neighbors returns the in-bounds king-move neighbours of p, clockwise from north.
// Returns nil for out-of-bounds points. The returned slice is shared.
// Complexity: O(1).
func (g *Grid) Neighbors(p Point) []Point {
	if !g.InBounds(p) {
		return nil
	}
	return g.neighbors[g.Index(p)]
}

// IsAdjacent reports whether a and b are distinct and one king move apart.
// It is symmetric and irreflexive and does not consult any grid bounds.
// Complexity: O(1).
func IsAdjacent(a, b Point) bool {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)

	return dx <= 1 && dy <= 1 && !(dx == 0 && dy == 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
