// Package physics provides the 2D vector type, distance helpers and the
// broad-phase grid used by collision detection.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
// The boundary counts as inside.
func PointInCircle(p, c Vec, radius float64) bool {
	return DistanceSquared(p, c) <= radius*radius
}

// CirclesTouch checks if two circles overlap or touch.
// Touching at exactly r1+r2 counts as contact.
func CirclesTouch(c1 Vec, r1 float64, c2 Vec, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) <= minDist*minDist
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
