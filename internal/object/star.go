package object

import "github.com/tomz197/byteblaster/internal/physics"

// StarCount is the size of the background star field.
const StarCount = 140

// Star is a background dot drifting down the screen.
type Star struct {
	Pos   physics.Vec
	Speed float64
	Size  int
	Color Color
}

// NewStar places a star at a random point of the arena.
func NewStar(arena Arena, rng Rand) Star {
	return Star{
		Pos:   physics.V(float64(intBetween(rng, 0, int(arena.Width))), float64(intBetween(rng, 0, int(arena.Height)))),
		Speed: uniform(rng, 30, 120),
		Size:  intBetween(rng, 1, 3),
		Color: Color{
			R: uint8(intBetween(rng, 180, 255)),
			G: uint8(intBetween(rng, 180, 255)),
			B: uint8(intBetween(rng, 180, 255)),
		},
	}
}

// NewStarField creates StarCount stars.
func NewStarField(arena Arena, rng Rand) []Star {
	stars := make([]Star, StarCount)
	for i := range stars {
		stars[i] = NewStar(arena, rng)
	}
	return stars
}

// Update moves the star down and wraps it to the top with a new column.
func (s *Star) Update(dt float64, arena Arena, rng Rand) {
	s.Pos.Y += s.Speed * dt
	if s.Pos.Y > arena.Height {
		s.Pos.Y = 0
		s.Pos.X = float64(intBetween(rng, 0, int(arena.Width)))
	}
}
