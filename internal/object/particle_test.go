package object

import (
	"math"
	"testing"

	"github.com/tomz197/byteblaster/internal/physics"
)

func TestParticleShrinksAndDies(t *testing.T) {
	p := NewParticle(physics.Zero, physics.V(10, 0), 1, 3, White)
	defer p.Release()

	p.Update(0.04)
	if math.Abs(p.Radius-2) > 1e-9 {
		t.Errorf("radius = %v, want 2", p.Radius)
	}
	if math.Abs(p.Pos.X-0.4) > 1e-9 {
		t.Errorf("pos.x = %v, want 0.4", p.Pos.X)
	}
	if !p.Alive() {
		t.Error("expected particle alive")
	}

	p.Update(0.07)
	if p.Alive() {
		t.Errorf("expected particle dead at radius %v", p.Radius)
	}
}

func TestParticleLifetimeExpires(t *testing.T) {
	p := NewParticle(physics.Zero, physics.Zero, 0.1, 40, White)
	defer p.Release()

	p.Update(0.1)
	if p.Alive() {
		t.Error("expected particle dead after lifetime")
	}
}

func TestBurstSpawn(t *testing.T) {
	rng := newTestRand()
	origin := physics.V(50, 50)

	ps := HitBurst.Spawn(nil, origin, rng)
	if len(ps) != HitBurst.Count {
		t.Fatalf("got %d particles, want %d", len(ps), HitBurst.Count)
	}
	for _, p := range ps {
		if p.Pos != origin {
			t.Errorf("particle at %v, want %v", p.Pos, origin)
		}
		speed := p.Vel.Length()
		if speed < HitBurst.MinSpeed-1e-9 || speed > HitBurst.MaxSpeed+1e-9 {
			t.Errorf("speed = %v, want in [%v, %v]", speed, HitBurst.MinSpeed, HitBurst.MaxSpeed)
		}
		if p.Lifetime != HitBurst.Lifetime || p.Radius != HitBurst.Radius {
			t.Errorf("lifetime/radius = %v/%v", p.Lifetime, p.Radius)
		}
		p.Release()
	}
}

func TestTintedBurstMixesColor(t *testing.T) {
	b := Burst{Count: 4, MinSpeed: 1, MaxSpeed: 2, Lifetime: 1, Radius: 1, Palette: []Color{White}}.Tinted(Black)

	for _, p := range b.Spawn(nil, physics.Zero, newTestRand()) {
		want := Black.Mix(White, 0.5)
		if p.Color != want {
			t.Errorf("color = %v, want %v", p.Color, want)
		}
		p.Release()
	}
}

func TestStarWrapsToTop(t *testing.T) {
	rng := newTestRand()
	s := Star{Pos: physics.V(10, testArena.Height-1), Speed: 100, Size: 1}

	s.Update(0.1, testArena, rng)

	if s.Pos.Y != 0 {
		t.Errorf("pos.y = %v, want 0", s.Pos.Y)
	}
	if s.Pos.X < 0 || s.Pos.X > testArena.Width {
		t.Errorf("pos.x = %v outside arena", s.Pos.X)
	}
}

func TestStarField(t *testing.T) {
	stars := NewStarField(testArena, newTestRand())
	if len(stars) != StarCount {
		t.Fatalf("got %d stars, want %d", len(stars), StarCount)
	}
	for _, s := range stars {
		if s.Size < 1 || s.Size > 3 {
			t.Errorf("size = %d, want in [1, 3]", s.Size)
		}
		if s.Speed < 30 || s.Speed >= 120 {
			t.Errorf("speed = %v, want in [30, 120)", s.Speed)
		}
		if s.Color.R < 180 || s.Color.G < 180 || s.Color.B < 180 {
			t.Errorf("color = %v, want light", s.Color)
		}
	}
}
