package object

import (
	"math"

	"github.com/tomz197/byteblaster/internal/physics"
)

// Wave tuning.
const (
	spawnMargin    = 28.0 // Distance outside the arena edge where enemies appear
	baseEnemySpeed = 90.0
	minSpawnGap    = 0.5
	minEnemySize   = 12.0
	maxEnemySize   = 22.0
)

// WaveSize is the number of enemies spawned during the given wave.
func WaveSize(wave int) int {
	return 5 + 2*wave
}

// WaveSpawnGap is the delay between two spawns during the given wave.
func WaveSpawnGap(wave int) float64 {
	return math.Max(minSpawnGap, 1.7-0.06*float64(wave))
}

// Spawner produces enemies over time, one wave after another.
// A wave is cleared only once every enemy it spawned has been destroyed.
type Spawner struct {
	Wave     int
	ToSpawn  int     // Enemies still to spawn this wave
	SpawnGap float64 // Seconds between spawns this wave
	Timer    float64 // Countdown to the next spawn

	arena      Arena
	rng        Rand
	colorIndex int // Next entry of EnemyColors
}

// NewSpawner creates a spawner positioned at the start of wave 1.
func NewSpawner(arena Arena, rng Rand) *Spawner {
	s := &Spawner{
		Wave:  1,
		arena: arena,
		rng:   rng,
	}
	s.resetWave()
	return s
}

func (s *Spawner) resetWave() {
	s.ToSpawn = WaveSize(s.Wave)
	s.SpawnGap = WaveSpawnGap(s.Wave)
	s.Timer = s.SpawnGap
}

// Update advances the countdown, appends at most one new enemy and moves to
// the next wave once the current one is cleared. Returns the updated slice
// and whether a new wave started.
func (s *Spawner) Update(dt float64, enemies []*Enemy) ([]*Enemy, bool) {
	s.Timer -= dt
	if s.Timer <= 0 && s.ToSpawn > 0 {
		s.Timer = s.SpawnGap
		enemies = append(enemies, s.spawn())
		s.ToSpawn--
	}

	if s.ToSpawn == 0 && len(enemies) == 0 {
		s.Wave++
		s.resetWave()
		return enemies, true
	}
	return enemies, false
}

// spawn creates an enemy just outside a random arena edge.
func (s *Spawner) spawn() *Enemy {
	w, h := int(s.arena.Width), int(s.arena.Height)
	m := int(spawnMargin)

	var pos physics.Vec
	switch s.rng.IntN(4) {
	case 0: // top
		pos = physics.V(float64(intBetween(s.rng, m, w-m)), -spawnMargin)
	case 1: // bottom
		pos = physics.V(float64(intBetween(s.rng, m, w-m)), s.arena.Height+spawnMargin)
	case 2: // left
		pos = physics.V(-spawnMargin, float64(intBetween(s.rng, m, h-m)))
	default: // right
		pos = physics.V(s.arena.Width+spawnMargin, float64(intBetween(s.rng, m, h-m)))
	}

	speed := baseEnemySpeed + 6*float64(s.Wave) + float64(intBetween(s.rng, -10, 20))
	hp := 2 + s.Wave/3
	size := physics.Clamp(minEnemySize+0.3*float64(s.Wave), minEnemySize, maxEnemySize)

	color := EnemyColors[s.colorIndex%len(EnemyColors)]
	s.colorIndex++

	return NewEnemy(pos, speed, hp, size, color)
}
