// Package game runs a Byte Blaster session: the mode state machine, the
// fixed-tick simulation step and the collision pass. Front-ends feed it an
// Input per frame and draw the Snapshot it produces.
package game

import (
	"github.com/charmbracelet/log"
	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/physics"
)

// Mode is the current phase of a session.
type Mode int

const (
	ModeStart    Mode = iota // Title screen
	ModePlaying              // Simulation running
	ModePaused               // Simulation frozen
	ModeGameOver             // Player died, waiting for restart
)

func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// HighScoreStore persists the best score between runs.
// Load returns 0 and no error when nothing was saved yet.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Options configures a new Session. Zero values get defaults.
type Options struct {
	Arena  object.Arena
	Store  HighScoreStore
	Rand   object.Rand
	Logger *log.Logger
}

// Session owns every entity of one game and the mode state machine.
// It is not safe for concurrent use; one goroutine drives it and hands
// Snapshots to renderers.
type Session struct {
	Player    *object.Player
	Spawner   *object.Spawner
	Bullets   []*object.Bullet
	Enemies   []*object.Enemy
	Particles []*object.Particle
	Stars     []object.Star

	Score     int
	HighScore int
	Elapsed   float64 // Seconds of play since the last reset
	Mode      Mode

	arena   object.Arena
	store   HighScoreStore
	rng     object.Rand
	logger  *log.Logger
	grid    *physics.SpatialGrid
	move    object.Movement
	aim     physics.Vec
	running bool
}

// NewSession creates a session on the start screen. The high score is read
// from the store once; a failing store counts as no high score.
func NewSession(opts Options) *Session {
	if opts.Arena == (object.Arena{}) {
		opts.Arena = DefaultArena
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.Store == nil {
		opts.Store = nopStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Session{
		arena:   opts.Arena,
		store:   opts.Store,
		rng:     opts.Rand,
		logger:  opts.Logger,
		grid:    physics.NewSpatialGrid(opts.Arena.Width, opts.Arena.Height, gridCellSize),
		running: true,
	}

	best, err := s.store.Load()
	if err != nil {
		s.logger.Warn("could not load high score", "err", err)
		best = 0
	}
	s.HighScore = max(0, best)

	s.Reset()
	return s
}

// Reset rebuilds the player, the spawner and every collection, and returns
// to the start screen. The high score is kept.
func (s *Session) Reset() {
	s.releaseParticles(s.Particles)

	s.Player = object.NewPlayer(s.arena.Center())
	s.Spawner = object.NewSpawner(s.arena, s.rng)
	s.Bullets = nil
	s.Enemies = nil
	s.Particles = nil
	s.Stars = object.NewStarField(s.arena, s.rng)
	s.Score = 0
	s.Elapsed = 0
	s.Mode = ModeStart
	s.move = object.Movement{}
	s.aim = s.Player.Pos
}

// Arena returns the playfield bounds.
func (s *Session) Arena() object.Arena {
	return s.arena
}

// Aim returns the last known pointer position.
func (s *Session) Aim() physics.Vec {
	return s.aim
}

// Running reports whether the session has not been asked to quit.
func (s *Session) Running() bool {
	return s.running
}

// HandleInput applies one frame of input: mode transitions, dash, and
// firing while the trigger is held.
func (s *Session) HandleInput(in Input) {
	if in.HasAim {
		s.aim = in.Aim
	}
	s.move = in.Movement()

	if in.Quit {
		s.running = false
		return
	}

	switch s.Mode {
	case ModeStart:
		if in.Confirm || (in.Click && PlayButton(s.arena).Contains(s.aim)) {
			s.Mode = ModePlaying
		}
	case ModePlaying:
		if in.Pause {
			s.Mode = ModePaused
			return
		}
		if in.Dash {
			s.Player.Dash(s.aim)
		}
		if in.Fire && s.Player.CanShoot() {
			s.Bullets = append(s.Bullets, s.Player.Shoot(s.aim))
			s.Particles = object.MuzzleBurst.Spawn(s.Particles, s.Player.Pos, s.rng)
		}
	case ModePaused:
		if in.Pause {
			s.Mode = ModePlaying
		}
	case ModeGameOver:
		if in.Restart {
			s.Reset()
		}
	}
}

// Update advances the simulation by dt seconds. Nothing moves outside of
// ModePlaying.
func (s *Session) Update(dt float64) {
	if s.Mode != ModePlaying || dt <= 0 {
		return
	}
	s.step(dt)
}

// Tick is HandleInput followed by Update.
func (s *Session) Tick(in Input, dt float64) {
	s.HandleInput(in)
	s.Update(dt)
}

// gameOver ends the run and persists a new best score.
func (s *Session) gameOver() {
	s.Mode = ModeGameOver
	s.logger.Info("game over", "score", s.Score, "wave", s.Spawner.Wave)

	if s.Score <= s.HighScore {
		return
	}
	s.HighScore = s.Score
	s.logger.Info("new high score", "score", s.Score)
	if err := s.store.Save(s.Score); err != nil {
		s.logger.Warn("could not save high score", "err", err)
	}
}

func (s *Session) releaseParticles(ps []*object.Particle) {
	for _, p := range ps {
		p.Release()
	}
}

// nopStore is used when no store is configured.
type nopStore struct{}

func (nopStore) Load() (int, error) { return 0, nil }
func (nopStore) Save(int) error     { return nil }
