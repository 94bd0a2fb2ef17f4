// Package geometry holds the small amount of 2-D maths a pattern session needs
// to reason about pointer movement in screen space: vectors, axis-aligned
// rectangles, the unsigned angle between two vectors, and the default placement
// of dots inside a canvas.
//
// Coordinates are float64 screen units with Y growing downwards; nothing here
// assumes pixels, points or terminal cells.
package geometry
