package game

import (
	"math"

	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/physics"
)

// AimLineLength is how far the aim indicator extends past the player center.
const AimLineLength = object.PlayerRadius + 6

// Circle is a drawable disc.
type Circle struct {
	Pos    physics.Vec
	Radius float64
	Color  object.Color
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the Session.
type Snapshot struct {
	Mode       Mode
	Arena      object.Arena
	Background object.Color
	PlayButton Rect

	Stars     []Circle
	Particles []Circle
	Bullets   []Circle
	Enemies   []Circle
	Player    Circle

	// AimFrom and AimTo describe the aim indicator; HasAimLine is false
	// when the pointer sits on the player.
	AimFrom    physics.Vec
	AimTo      physics.Vec
	HasAimLine bool

	Invincible bool
	Lives      int
	MaxLives   int
	Score      int
	Wave       int
	HighScore  int
	Elapsed    float64
}

// Snapshot builds a fresh snapshot of the session.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.FillSnapshot(&snap)
	return snap
}

// FillSnapshot overwrites snap, reusing its slices.
func (s *Session) FillSnapshot(snap *Snapshot) {
	snap.Mode = s.Mode
	snap.Arena = s.arena
	snap.Background = BackgroundColor(s.Elapsed)
	snap.PlayButton = PlayButton(s.arena)

	snap.Stars = snap.Stars[:0]
	for _, st := range s.Stars {
		snap.Stars = append(snap.Stars, Circle{Pos: st.Pos, Radius: float64(st.Size), Color: st.Color})
	}
	snap.Particles = snap.Particles[:0]
	for _, p := range s.Particles {
		snap.Particles = append(snap.Particles, Circle{Pos: p.Pos, Radius: p.Radius, Color: p.Color})
	}
	snap.Bullets = snap.Bullets[:0]
	for _, b := range s.Bullets {
		snap.Bullets = append(snap.Bullets, Circle{Pos: b.Pos, Radius: b.Radius, Color: b.Color})
	}
	snap.Enemies = snap.Enemies[:0]
	for _, e := range s.Enemies {
		snap.Enemies = append(snap.Enemies, Circle{Pos: e.Pos, Radius: e.Size, Color: e.Color})
	}

	p := s.Player
	color := p.Color
	if p.IsInvincible() {
		color = object.Green
	}
	snap.Player = Circle{Pos: p.Pos, Radius: p.Radius, Color: color}

	d := s.aim.Sub(p.Pos)
	snap.HasAimLine = !d.IsZero()
	snap.AimFrom = p.Pos
	snap.AimTo = p.Pos.Add(d.Normalize(physics.Zero).Scale(AimLineLength))

	snap.Invincible = p.IsInvincible()
	snap.Lives = p.Lives
	snap.MaxLives = object.MaxLives
	snap.Score = s.Score
	snap.Wave = s.Spawner.Wave
	snap.HighScore = s.HighScore
	snap.Elapsed = s.Elapsed
}

// BackgroundColor slowly cycles the backdrop with elapsed play time.
func BackgroundColor(t float64) object.Color {
	wave := func(base, phase float64) uint8 {
		return uint8(base + 40*(math.Sin(t*0.5+phase)*0.5+0.5))
	}
	return object.Color{R: wave(18, 0), G: wave(18, 2), B: wave(22, 4)}
}
