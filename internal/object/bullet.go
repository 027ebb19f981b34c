package object

import "github.com/tomz197/byteblaster/internal/physics"

// Bullet is a shot fired by the player.
type Bullet struct {
	Pos       physics.Vec
	Vel       physics.Vec
	Lifetime  float64 // Seconds remaining before removal
	Radius    float64
	Color     Color
	destroyed bool // Consumed by a hit
}

// Bullet tuning.
const (
	BulletSpeed    = 600.0
	BulletLifetime = 0.6
	BulletRadius   = 4.0
)

// Update moves the bullet and burns lifetime.
func (b *Bullet) Update(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Lifetime -= dt
}

// MarkDestroyed marks the bullet as consumed by a hit.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet was consumed by a hit.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Alive reports whether the bullet should stay in play: not consumed,
// lifetime left and still inside the arena.
func (b *Bullet) Alive(arena Arena) bool {
	return !b.destroyed && b.Lifetime > 0 && arena.Contains(b.Pos)
}
