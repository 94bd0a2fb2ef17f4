package gridgraph

import "fmt"

// Point identifies a single dot on the grid.
// X is the column and Y is the row, both zero-based.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// String renders the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// kingOffsets lists the eight king-move directions clockwise from north.
var kingOffsets = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// Grid is an immutable N×N lattice of points.
// points holds every point in row-major order; neighbors[i] holds the
// in-bounds king-move neighbours of points[i] in kingOffsets order.
type Grid struct {
	size      int
	points    []Point
	neighbors [][]Point
}
