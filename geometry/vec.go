package geometry

import "math"

// Vec is a point or displacement in screen space.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{X: v.X - w.X, Y: v.Y - w.Y}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return v.Sub(w).Len()
}

// AngleBetween returns the unsigned angle between a and b in degrees, in [0, 180].
// The cosine is clamped to [-1, 1] before math.Acos so rounding never yields NaN.
// If either vector has zero length the angle is 0.
func AngleBetween(a, b Vec) float64 {
	mag := a.Len() * b.Len()
	if mag == 0 {
		return 0
	}

	cos := a.Dot(b) / mag
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}
