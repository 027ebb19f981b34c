package game

import (
	"github.com/tomz197/byteblaster/internal/object"
)

// step advances one tick. The order of the phases is fixed: bullets are
// culled before collisions, enemies move before they are hit, and the
// death check runs after every contact of the tick.
func (s *Session) step(dt float64) {
	s.Elapsed += dt

	for i := range s.Stars {
		s.Stars[i].Update(dt, s.arena, s.rng)
	}

	s.Player.Update(dt, s.move, s.arena)

	var advanced bool
	s.Enemies, advanced = s.Spawner.Update(dt, s.Enemies)
	if advanced {
		s.logger.Debug("wave started", "wave", s.Spawner.Wave, "enemies", s.Spawner.ToSpawn)
	}

	s.updateBullets(dt)

	for _, e := range s.Enemies {
		e.Update(dt, s.Player.Pos, s.arena)
	}

	s.resolveBulletHits()
	s.resolvePlayerContacts()

	if s.Player.IsDead() {
		s.gameOver()
	}

	s.updateParticles(dt)
}

// updateBullets moves bullets and drops expired or escaped ones.
func (s *Session) updateBullets(dt float64) {
	kept := s.Bullets[:0] // reuse backing array
	for _, b := range s.Bullets {
		b.Update(dt)
		if b.Alive(s.arena) {
			kept = append(kept, b)
		}
	}
	clear(s.Bullets[len(kept):])
	s.Bullets = kept
}

// updateParticles moves particles and returns dead ones to the pool.
func (s *Session) updateParticles(dt float64) {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		p.Update(dt)
		if p.Alive() {
			kept = append(kept, p)
		} else {
			p.Release()
		}
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}

// pruneBullets drops bullets consumed during the collision pass.
func pruneBullets(bullets []*object.Bullet) []*object.Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if !b.IsDestroyed() {
			kept = append(kept, b)
		}
	}
	clear(bullets[len(kept):])
	return kept
}
