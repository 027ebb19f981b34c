package game

import (
	"math/rand/v2"

	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/physics"
)

// Arena
var DefaultArena = object.Arena{Width: 960, Height: 540}

// Scoring
const (
	ScorePerKill = 10
)

// Collision
const (
	// gridCellSize must cover the largest enemy size plus the bullet radius.
	gridCellSize = 32.0
)

// Start screen
const (
	PlayButtonWidth   = 220.0
	PlayButtonHeight  = 60.0
	playButtonYOffset = 30.0 // Below the arena center
)

// Rect is an axis-aligned rectangle, Min inclusive and Max exclusive.
type Rect struct {
	Min, Max physics.Vec
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p physics.Vec) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Center returns the middle of r.
func (r Rect) Center() physics.Vec {
	return physics.V((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// PlayButton returns the start screen button bounds for the given arena.
func PlayButton(arena object.Arena) Rect {
	c := arena.Center().Add(physics.V(0, playButtonYOffset))
	half := physics.V(PlayButtonWidth/2, PlayButtonHeight/2)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// NewRand returns a PCG generator seeded with seed, or with a random seed
// when seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
