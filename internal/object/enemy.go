package object

import (
	"math"

	"github.com/tomz197/byteblaster/internal/physics"
)

// Enemy tuning.
const (
	// KnockbackDecay is the knockback multiplier applied per nominal tick.
	KnockbackDecay = 0.9
	// KnockbackTickRate is the tick rate KnockbackDecay was tuned for.
	KnockbackTickRate = 60.0

	enemyEdgeMargin = 10.0
)

// Enemy chases the player until its hit points run out.
type Enemy struct {
	Pos   physics.Vec
	Speed float64
	HP    int
	Size  float64 // Collision and draw radius
	Color Color
	Knock physics.Vec // Transient knockback velocity
}

// NewEnemy creates an enemy at pos.
func NewEnemy(pos physics.Vec, speed float64, hp int, size float64, color Color) *Enemy {
	return &Enemy{
		Pos:   pos,
		Speed: speed,
		HP:    hp,
		Size:  size,
		Color: color,
	}
}

// Update steers straight at target, applies knockback and keeps the enemy
// inside the arena.
func (e *Enemy) Update(dt float64, target physics.Vec, arena Arena) {
	dir := target.Sub(e.Pos).Normalize(physics.Zero)
	move := dir.Scale(e.Speed).Add(e.Knock)
	e.Pos = e.Pos.Add(move.Scale(dt))

	// Decay normalized to the 60 Hz tick the constant was tuned for
	e.Knock = e.Knock.Scale(math.Pow(KnockbackDecay, dt*KnockbackTickRate))

	e.Pos = arena.ClampInset(e.Pos, enemyEdgeMargin)
}

// Hit applies damage (truncated to whole points) and a knockback impulse.
func (e *Enemy) Hit(power float64, impulse physics.Vec) {
	e.HP -= int(power)
	e.Knock = e.Knock.Add(impulse)
}

// IsDead reports whether the enemy has no hit points left.
func (e *Enemy) IsDead() bool {
	return e.HP <= 0
}
