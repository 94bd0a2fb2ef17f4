package geometry

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether v lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive. Empty rects contain nothing.
func (r Rect) Contains(v Vec) bool {
	if r.Empty() {
		return false
	}
	return v.X >= r.X && v.X < r.X+r.W && v.Y >= r.Y && v.Y < r.Y+r.H
}

// Layout places an n×n grid of dotSize squares inside a width×height canvas
// and returns their frames in row-major order. The dot in column c and row r is
// centred at (width·(c+1)/(n+1), height·(r+1)/(n+1)), so dots are evenly spaced
// with equal margins. Returns nil if n is not positive.
func Layout(n int, width, height, dotSize float64) []Rect {
	if n <= 0 {
		return nil
	}

	frames := make([]Rect, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cx := width * float64(col+1) / float64(n+1)
			cy := height * float64(row+1) / float64(n+1)
			frames = append(frames, Rect{X: cx - dotSize/2, Y: cy - dotSize/2, W: dotSize, H: dotSize})
		}
	}

	return frames
}
