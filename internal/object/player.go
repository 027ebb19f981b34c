package object

import (
	"github.com/tomz197/byteblaster/internal/physics"
)

// Player tuning.
const (
	PlayerSpeed       = 260.0
	PlayerRadius      = 14.0
	ReloadTime        = 0.12 // Seconds between shots
	MaxLives          = 3
	HitInvincibility  = 0.6  // Seconds of protection after losing a life
	DashDistance      = 240.0
	DashInvincibility = 0.25
	DashCooldown      = 1.2

	muzzleOffset     = 6.0 // Bullet spawn distance beyond the player's edge
	playerEdgeMargin = 2.0 // Extra clearance beyond the radius when clamping
)

// Movement holds the four held movement keys for one tick.
type Movement struct {
	Up, Down, Left, Right bool
}

// Direction combines the flags into a unit vector so diagonal speed equals
// axial speed. No keys (or opposing keys) yield the zero vector.
func (m Movement) Direction() physics.Vec {
	var d physics.Vec
	if m.Up {
		d.Y--
	}
	if m.Down {
		d.Y++
	}
	if m.Left {
		d.X--
	}
	if m.Right {
		d.X++
	}
	return d.Normalize(physics.Zero)
}

// Player is the avatar controlled by the user.
type Player struct {
	Pos          physics.Vec
	Speed        float64
	Radius       float64
	Color        Color
	ReloadTime   float64
	Cooldown     float64 // Time until next shot allowed
	BulletSpeed  float64
	Damage       int
	Lives        int
	Invincible   float64 // Remaining invincibility in seconds
	DashCooldown float64 // Time until next dash allowed

	bulletIndex int // Next entry of BulletColors
}

// NewPlayer creates a player with full lives at pos.
func NewPlayer(pos physics.Vec) *Player {
	return &Player{
		Pos:         pos,
		Speed:       PlayerSpeed,
		Radius:      PlayerRadius,
		Color:       Cyan,
		ReloadTime:  ReloadTime,
		BulletSpeed: BulletSpeed,
		Damage:      1,
		Lives:       MaxLives,
	}
}

// Update moves the player and counts down its timers.
func (p *Player) Update(dt float64, move Movement, arena Arena) {
	p.Pos = p.Pos.Add(move.Direction().Scale(p.Speed * dt))
	p.Pos = arena.ClampInset(p.Pos, p.Radius+playerEdgeMargin)

	p.Cooldown = max(0, p.Cooldown-dt)
	p.Invincible = max(0, p.Invincible-dt)
	p.DashCooldown = max(0, p.DashCooldown-dt)
}

// CanShoot reports whether the weapon has reloaded.
func (p *Player) CanShoot() bool {
	return p.Cooldown <= 0
}

// Shoot fires a bullet toward aim and restarts the reload timer.
// Aiming at the player's own center fires to the right.
func (p *Player) Shoot(aim physics.Vec) *Bullet {
	p.Cooldown = p.ReloadTime

	dir := aim.Sub(p.Pos).Normalize(physics.Right)
	color := BulletColors[p.bulletIndex%len(BulletColors)]
	p.bulletIndex++

	return &Bullet{
		Pos:      p.Pos.Add(dir.Scale(p.Radius + muzzleOffset)),
		Vel:      dir.Scale(p.BulletSpeed),
		Lifetime: BulletLifetime,
		Radius:   BulletRadius,
		Color:    color,
	}
}

// Dash teleports the player DashDistance toward aim and grants a short
// invincibility window. It does nothing while on cooldown or when aim is the
// player's own position.
func (p *Player) Dash(aim physics.Vec) {
	if p.DashCooldown > 0 {
		return
	}
	d := aim.Sub(p.Pos)
	if d.IsZero() {
		return
	}
	p.Pos = p.Pos.Add(d.Normalize(physics.Zero).Scale(DashDistance))
	p.Invincible = DashInvincibility
	p.DashCooldown = DashCooldown
}

// TakeHit removes a life unless the player is invincible.
// Returns true when a life was actually lost.
func (p *Player) TakeHit() bool {
	if p.Invincible > 0 {
		return false
	}
	if p.Lives > 0 {
		p.Lives--
	}
	p.Invincible = HitInvincibility
	return true
}

// IsDead reports whether the player has no lives left.
func (p *Player) IsDead() bool {
	return p.Lives <= 0
}

// IsInvincible reports whether contact damage is currently suppressed.
func (p *Player) IsInvincible() bool {
	return p.Invincible > 0
}
