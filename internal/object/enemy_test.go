package object

import (
	"math"
	"testing"

	"github.com/tomz197/byteblaster/internal/physics"
)

func TestEnemySteersTowardTarget(t *testing.T) {
	e := NewEnemy(physics.V(100, 100), 100, 2, 12, Red)
	e.Update(0.5, physics.V(400, 100), testArena)

	if e.Pos != physics.V(150, 100) {
		t.Errorf("pos = %v, want (150, 100)", e.Pos)
	}
}

func TestEnemyOnTargetStaysPut(t *testing.T) {
	e := NewEnemy(physics.V(100, 100), 100, 2, 12, Red)
	e.Update(0.5, physics.V(100, 100), testArena)

	if e.Pos != physics.V(100, 100) {
		t.Errorf("pos = %v, want unchanged", e.Pos)
	}
}

func TestEnemyKnockbackDecaysPerTick(t *testing.T) {
	e := NewEnemy(physics.V(100, 100), 0, 2, 12, Red)
	e.Knock = physics.V(60, 0)

	e.Update(1.0/60, physics.V(100, 100), testArena)

	if math.Abs(e.Knock.X-54) > 1e-9 {
		t.Errorf("knock = %v, want 54 after one 60 Hz tick", e.Knock.X)
	}
	if math.Abs(e.Pos.X-101) > 1e-9 {
		t.Errorf("pos.x = %v, want 101", e.Pos.X)
	}

	// Two half ticks decay as much as one full tick.
	f := NewEnemy(physics.V(100, 100), 0, 2, 12, Red)
	f.Knock = physics.V(60, 0)
	f.Update(1.0/120, physics.V(100, 100), testArena)
	f.Update(1.0/120, physics.V(100, 100), testArena)
	if math.Abs(f.Knock.X-54) > 1e-9 {
		t.Errorf("knock after two half ticks = %v, want 54", f.Knock.X)
	}
}

func TestEnemyClampedInsideArena(t *testing.T) {
	e := NewEnemy(physics.V(-28, 300), 90, 2, 12, Red)
	e.Update(0.01, physics.V(480, 300), testArena)

	if e.Pos.X != 10 {
		t.Errorf("pos.x = %v, want 10", e.Pos.X)
	}
}

func TestEnemyHitTruncatesPower(t *testing.T) {
	e := NewEnemy(physics.V(100, 100), 90, 3, 12, Red)

	e.Hit(1.9, physics.Zero)
	if e.HP != 2 {
		t.Errorf("hp = %d, want 2", e.HP)
	}

	e.Hit(2, physics.V(5, -5))
	if !e.IsDead() {
		t.Errorf("expected dead enemy, hp = %d", e.HP)
	}
	if e.Knock != physics.V(5, -5) {
		t.Errorf("knock = %v, want (5, -5)", e.Knock)
	}
}
