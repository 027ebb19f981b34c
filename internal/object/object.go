// Package object holds the simulation entities (player, enemies, bullets,
// particles, stars) and the wave spawner. Entities are plain data with a
// per-entity update rule; the game package decides when each rule runs.
package object

import "github.com/tomz197/byteblaster/internal/physics"

// Rand is the randomness source used for spawn positions, enemy speed noise
// and cosmetic effects. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// uniform returns a float in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// intBetween returns an int in [lo, hi], both inclusive.
func intBetween(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// Arena is the fixed rectangular playfield [0,Width]x[0,Height].
type Arena struct {
	Width  float64
	Height float64
}

// Center returns the middle of the arena.
func (a Arena) Center() physics.Vec {
	return physics.V(a.Width/2, a.Height/2)
}

// Contains reports whether p lies inside the arena, edges included.
func (a Arena) Contains(p physics.Vec) bool {
	return p.X >= 0 && p.X <= a.Width && p.Y >= 0 && p.Y <= a.Height
}

// ClampInset clamps p to the arena shrunk by margin on every side.
func (a Arena) ClampInset(p physics.Vec, margin float64) physics.Vec {
	return physics.Vec{
		X: physics.Clamp(p.X, margin, a.Width-margin),
		Y: physics.Clamp(p.Y, margin, a.Height-margin),
	}
}
