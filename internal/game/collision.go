package game

import (
	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/physics"
)

// resolveBulletHits lets every enemy take at most one bullet this tick.
// The bullet chosen is the first one in collection order that touches the
// enemy; it is consumed and cannot hit another enemy. Dead enemies are
// removed immediately.
func (s *Session) resolveBulletHits() {
	if len(s.Bullets) == 0 || len(s.Enemies) == 0 {
		return
	}

	s.grid.Clear()
	for i, b := range s.Bullets {
		s.grid.Insert(b.Pos, i)
	}

	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		b := s.firstBulletHitting(e)
		if b == nil {
			kept = append(kept, e)
			continue
		}

		// Bullets carry no knockback
		e.Hit(float64(s.Player.Damage), physics.Zero)
		b.MarkDestroyed()
		s.Particles = object.HitBurst.Spawn(s.Particles, b.Pos, s.rng)

		if e.IsDead() {
			s.Score += ScorePerKill
			s.Particles = object.DeathBurst.Tinted(e.Color).Spawn(s.Particles, e.Pos, s.rng)
			continue
		}
		kept = append(kept, e)
	}
	clear(s.Enemies[len(kept):])
	s.Enemies = kept

	s.Bullets = pruneBullets(s.Bullets)
}

// firstBulletHitting returns the lowest-index live bullet touching e, or nil.
func (s *Session) firstBulletHitting(e *object.Enemy) *object.Bullet {
	best := -1
	s.grid.QueryAround(e.Pos, func(i int) bool {
		if best >= 0 && i >= best {
			return false
		}
		b := s.Bullets[i]
		if b.IsDestroyed() {
			return false
		}
		if physics.CirclesTouch(e.Pos, e.Size, b.Pos, b.Radius) {
			best = i
		}
		return false
	})
	if best < 0 {
		return nil
	}
	return s.Bullets[best]
}

// resolvePlayerContacts damages the player for every touching enemy and
// pushes each of those enemies out to touching distance, whether or not the
// player was invincible.
func (s *Session) resolvePlayerContacts() {
	p := s.Player
	for _, e := range s.Enemies {
		if !physics.CirclesTouch(e.Pos, e.Size, p.Pos, p.Radius) {
			continue
		}
		if p.TakeHit() {
			s.Particles = object.DamageBurst.Spawn(s.Particles, p.Pos, s.rng)
		}

		sep := e.Pos.Sub(p.Pos).Normalize(physics.Right)
		e.Pos = p.Pos.Add(sep.Scale(e.Size + p.Radius))
	}
}
