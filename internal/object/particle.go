package object

import (
	"math"
	"sync"

	"github.com/tomz197/byteblaster/internal/physics"
)

const (
	particleShrinkRate = 25.0 // Radius lost per second
	particleMinRadius  = 0.5  // Below this a particle is invisible
)

// particlePool reuses Particle objects; bursts create dozens per second.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived cosmetic dot. It never affects gameplay.
type Particle struct {
	Pos      physics.Vec
	Vel      physics.Vec
	Lifetime float64 // Seconds remaining
	Radius   float64 // Shrinks over time
	Color    Color
}

// NewParticle takes a particle from the pool.
func NewParticle(pos, vel physics.Vec, lifetime, radius float64, color Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Lifetime = lifetime
	p.Radius = radius
	p.Color = color
	return p
}

// Release returns the particle to the pool.
// Must only be called once the particle is no longer referenced.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle, burns lifetime and shrinks it.
func (p *Particle) Update(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Lifetime -= dt
	p.Radius = max(0, p.Radius-dt*particleShrinkRate)
}

// Alive reports whether the particle is still visible.
func (p *Particle) Alive() bool {
	return p.Lifetime > 0 && p.Radius > particleMinRadius
}

// Burst describes a radial puff of particles.
type Burst struct {
	Count    int
	MinSpeed float64
	MaxSpeed float64
	Lifetime float64
	Radius   float64
	Palette  []Color
	// Tint, when set, is mixed 50/50 into every sampled palette color.
	Tint *Color
}

// Burst presets.
var (
	MuzzleBurst = Burst{Count: 6, MinSpeed: 40, MaxSpeed: 140, Lifetime: 0.2, Radius: 3, Palette: ParticleColors}
	HitBurst    = Burst{Count: 12, MinSpeed: 60, MaxSpeed: 180, Lifetime: 0.35, Radius: 3, Palette: ParticleColors}
	DeathBurst  = Burst{Count: 20, MinSpeed: 50, MaxSpeed: 240, Lifetime: 0.6, Radius: 4, Palette: ParticleColors}
	DamageBurst = Burst{Count: 16, MinSpeed: 60, MaxSpeed: 200, Lifetime: 0.45, Radius: 3, Palette: DamageColors}
)

// Tinted returns a copy of b whose colors are blended with c.
func (b Burst) Tinted(c Color) Burst {
	b.Tint = &c
	return b
}

// Spawn appends b.Count particles flying out of pos in random directions.
func (b Burst) Spawn(particles []*Particle, pos physics.Vec, rng Rand) []*Particle {
	for range b.Count {
		angle := uniform(rng, 0, 2*math.Pi)
		speed := uniform(rng, b.MinSpeed, b.MaxSpeed)
		vel := physics.V(math.Cos(angle), math.Sin(angle)).Scale(speed)

		color := White
		if len(b.Palette) > 0 {
			color = b.Palette[rng.IntN(len(b.Palette))]
		}
		if b.Tint != nil {
			color = b.Tint.Mix(color, 0.5)
		}

		particles = append(particles, NewParticle(pos, vel, b.Lifetime, b.Radius, color))
	}
	return particles
}
