package object

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/byteblaster/internal/physics"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSpawnerWaveOne(t *testing.T) {
	s := NewSpawner(testArena, newTestRand())

	if s.Wave != 1 {
		t.Errorf("wave = %d, want 1", s.Wave)
	}
	if s.ToSpawn != 7 {
		t.Errorf("to spawn = %d, want 7", s.ToSpawn)
	}
	if math.Abs(s.SpawnGap-1.64) > 1e-9 {
		t.Errorf("spawn gap = %v, want 1.64", s.SpawnGap)
	}

	enemies, _ := s.Update(1.63, nil)
	if len(enemies) != 0 {
		t.Fatalf("spawned %d enemies before 1.64s", len(enemies))
	}

	enemies, _ = s.Update(0.02, enemies)
	if len(enemies) != 1 {
		t.Fatalf("spawned %d enemies at 1.65s, want 1", len(enemies))
	}
	if s.ToSpawn != 6 {
		t.Errorf("to spawn = %d, want 6", s.ToSpawn)
	}
	if math.Abs(s.Timer-s.SpawnGap) > 1e-9 {
		t.Errorf("timer = %v, want reset to %v", s.Timer, s.SpawnGap)
	}
}

func TestSpawnedEnemyParameters(t *testing.T) {
	s := NewSpawner(testArena, newTestRand())

	var enemies []*Enemy
	for range 7 {
		enemies, _ = s.Update(s.SpawnGap, enemies)
	}
	if len(enemies) != 7 {
		t.Fatalf("got %d enemies, want 7", len(enemies))
	}

	for i, e := range enemies {
		if e.HP != 2 {
			t.Errorf("enemy %d hp = %d, want 2", i, e.HP)
		}
		if math.Abs(e.Size-12.3) > 1e-9 {
			t.Errorf("enemy %d size = %v, want 12.3", i, e.Size)
		}
		if e.Speed < 86 || e.Speed > 116 {
			t.Errorf("enemy %d speed = %v, want in [86, 116]", i, e.Speed)
		}
		if e.Color != EnemyColors[i%len(EnemyColors)] {
			t.Errorf("enemy %d color = %v, want %v", i, e.Color, EnemyColors[i])
		}

		onEdge := e.Pos.X == -spawnMargin || e.Pos.X == testArena.Width+spawnMargin ||
			e.Pos.Y == -spawnMargin || e.Pos.Y == testArena.Height+spawnMargin
		if !onEdge {
			t.Errorf("enemy %d at %v is not just outside an edge", i, e.Pos)
		}
		if testArena.Contains(e.Pos) {
			t.Errorf("enemy %d spawned inside the arena at %v", i, e.Pos)
		}
	}
}

func TestSpawnerWaitsForClearedWave(t *testing.T) {
	s := NewSpawner(testArena, newTestRand())

	var enemies []*Enemy
	for range 7 {
		var advanced bool
		enemies, advanced = s.Update(s.SpawnGap, enemies)
		if advanced {
			t.Fatal("wave advanced while enemies were alive")
		}
	}
	if s.ToSpawn != 0 {
		t.Fatalf("to spawn = %d, want 0", s.ToSpawn)
	}

	// Everything spawned but enemies still alive.
	for range 10 {
		var advanced bool
		enemies, advanced = s.Update(1, enemies)
		if advanced || s.Wave != 1 {
			t.Fatalf("wave advanced to %d with %d enemies alive", s.Wave, len(enemies))
		}
	}
	if len(enemies) != 7 {
		t.Errorf("got %d enemies, want 7 (no extra spawns)", len(enemies))
	}

	enemies, advanced := s.Update(0.01, enemies[:0])
	if !advanced {
		t.Fatal("expected wave to advance once cleared")
	}
	if len(enemies) != 0 {
		t.Errorf("got %d enemies right after wave change, want 0", len(enemies))
	}
	if s.Wave != 2 || s.ToSpawn != 9 {
		t.Errorf("wave/to spawn = %d/%d, want 2/9", s.Wave, s.ToSpawn)
	}
	if math.Abs(s.SpawnGap-1.58) > 1e-9 {
		t.Errorf("spawn gap = %v, want 1.58", s.SpawnGap)
	}
}

func TestWaveScaling(t *testing.T) {
	tests := []struct {
		wave int
		size int
		gap  float64
	}{
		{1, 7, 1.64},
		{5, 15, 1.4},
		{20, 45, 0.5},
		{40, 85, 0.5},
	}
	for _, tt := range tests {
		if got := WaveSize(tt.wave); got != tt.size {
			t.Errorf("WaveSize(%d) = %d, want %d", tt.wave, got, tt.size)
		}
		if got := WaveSpawnGap(tt.wave); math.Abs(got-tt.gap) > 1e-9 {
			t.Errorf("WaveSpawnGap(%d) = %v, want %v", tt.wave, got, tt.gap)
		}
	}
}

func TestLateWaveEnemyLimits(t *testing.T) {
	s := NewSpawner(testArena, newTestRand())
	s.Wave = 50
	e := s.spawn()

	if e.Size != maxEnemySize {
		t.Errorf("size = %v, want %v", e.Size, maxEnemySize)
	}
	if e.HP != 2+50/3 {
		t.Errorf("hp = %d, want %d", e.HP, 2+50/3)
	}
	if e.Pos == physics.Zero {
		t.Error("enemy spawned at origin")
	}
}
