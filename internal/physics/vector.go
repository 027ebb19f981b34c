package physics

import "math"

// Vec is a 2D vector in arena coordinates (pixels, y pointing down).
type Vec struct {
	X, Y float64
}

// Common directions.
var (
	Zero  = Vec{}
	Right = Vec{X: 1}
)

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// LengthSquared returns the squared magnitude of v.
func (v Vec) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector pointing along v, or fallback when v has
// zero length.
func (v Vec) Normalize(fallback Vec) Vec {
	l := v.Length()
	if l == 0 {
		return fallback
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}
