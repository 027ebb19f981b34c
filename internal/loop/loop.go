// Package loop runs a game session in a terminal: it reads raw input,
// steps the session at a fixed frame rate and renders each frame as
// colored half blocks.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/byteblaster/internal/draw"
	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/input"
	"github.com/tomz197/byteblaster/internal/physics"
)

const defaultFrameRate = 60

// shutdownDisplaySeconds is how long the shutdown notice stays up before
// the terminal disconnects on its own.
const shutdownDisplaySeconds = 10.0

// Options configures a Terminal. Zero values get defaults.
type Options struct {
	Game         game.Options
	TermSizeFunc draw.TermSizeFunc
	FrameRate    int

	// Hub, when set, registers the terminal so a server can announce a
	// shutdown to it.
	Hub  *Hub
	User string

	// IdleWarn and IdleKick enable the inactivity warning and disconnect.
	// Zero disables them.
	IdleWarn time.Duration
	IdleKick time.Duration
}

// screen identifies what fills the terminal. A change triggers a full clear.
type screen int

const (
	screenNone screen = iota
	screenStart
	screenPlaying
	screenPaused
	screenGameOver
	screenIdle
	screenShutdown
)

// Terminal drives one Session on one terminal.
type Terminal struct {
	session  *game.Session
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	stream   *input.Stream
	termSize draw.TermSizeFunc
	frame    time.Duration
	logger   *log.Logger

	hub    *Hub
	handle *Handle

	snap       game.Snapshot
	lastInput  time.Time
	idleWarn   time.Duration
	idleKick   time.Duration
	idle       bool
	shutdown   bool
	shutdownIn float64

	termW, termH int
	prevScreen   screen
}

// NewTerminal creates a terminal front-end reading raw input from r and
// writing frames to w.
func NewTerminal(r io.Reader, w io.Writer, opts Options) *Terminal {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = defaultFrameRate
	}
	if opts.Game.Logger == nil {
		opts.Game.Logger = log.Default()
	}

	session := game.NewSession(opts.Game)
	arena := session.Arena()

	termW, termH, err := opts.TermSizeFunc()
	if err != nil {
		termW, termH = 80, 24
	}

	t := &Terminal{
		session:  session,
		canvas:   draw.NewScaledCanvas(termW, termH, arena.Width, arena.Height),
		cw:       draw.NewChunkWriter(w),
		stream:   input.StartStream(r),
		termSize: opts.TermSizeFunc,
		frame:    time.Second / time.Duration(opts.FrameRate),
		logger:   opts.Game.Logger,
		hub:      opts.Hub,
		idleWarn: opts.IdleWarn,
		idleKick: opts.IdleKick,
		termW:    termW,
		termH:    termH,
	}
	if t.hub != nil {
		t.handle = t.hub.Register(opts.User)
	}
	return t
}

// Session returns the session the terminal drives.
func (t *Terminal) Session() *game.Session {
	return t.session
}

// Run starts the frame loop with the Input → Update → Draw cycle. It
// returns when the player quits, the input reader closes, ctx is done or
// writing to the terminal fails.
func (t *Terminal) Run(ctx context.Context) error {
	if t.handle != nil {
		defer t.hub.Unregister(t.handle.ID)
	}

	t.cw.EnterGame()
	if err := t.cw.Flush(); err != nil {
		return err
	}
	defer func() {
		t.cw.LeaveGame()
		_ = t.cw.Flush()
	}()

	t.lastInput = time.Now()
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime), t.frame).Seconds()
		lastTime = frameStart

		// ===== INPUT PHASE =====
		raw := input.ReadInput(t.stream)
		if raw.Closed {
			return nil
		}
		if len(raw.Pressed) > 0 {
			t.lastInput = frameStart
		}
		t.processNotices()
		t.updateScreen()

		// ===== UPDATE PHASE =====
		if done := t.update(raw, dt, frameStart); done {
			return nil
		}

		// ===== DRAW PHASE =====
		if err := t.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < t.frame {
			time.Sleep(t.frame - elapsed)
		}
	}
}

// update advances the session or the shutdown countdown and reports
// whether the terminal should disconnect.
func (t *Terminal) update(raw input.Input, dt float64, now time.Time) bool {
	if t.shutdown {
		t.shutdownIn -= dt
		return raw.Quit || t.shutdownIn <= 0
	}

	if t.idleKick > 0 && now.Sub(t.lastInput) > t.idleKick {
		t.logger.Info("disconnecting inactive player", "idle", now.Sub(t.lastInput).Round(time.Second))
		return true
	}
	t.idle = t.idleWarn > 0 && now.Sub(t.lastInput) > t.idleWarn

	t.session.Tick(t.translate(raw), dt)
	return !t.session.Running()
}

// translate maps raw terminal input to arena coordinates.
func (t *Terminal) translate(raw input.Input) game.Input {
	in := game.Input{
		Up:      raw.Up,
		Down:    raw.Down,
		Left:    raw.Left,
		Right:   raw.Right,
		Fire:    raw.Fire || raw.Mouse.Held,
		Confirm: raw.Confirm,
		Pause:   raw.Pause,
		Restart: raw.Restart,
		Dash:    raw.Dash,
		Quit:    raw.Quit,
		Click:   raw.Mouse.Click,
	}
	if raw.Mouse.Known {
		in.Aim = physics.Vec(t.canvas.TerminalToLogical(raw.Mouse.Col, raw.Mouse.Row))
		in.HasAim = true
	}
	return in
}

// processNotices handles messages from the hub.
func (t *Terminal) processNotices() {
	if t.handle == nil || t.shutdown {
		return
	}
	for {
		select {
		case n, ok := <-t.handle.Notices:
			if !ok {
				return
			}
			if n == NoticeShutdown {
				t.shutdown = true
				t.shutdownIn = shutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize.
func (t *Terminal) updateScreen() {
	termW, termH, err := t.termSize()
	if err != nil || (termW == t.termW && termH == t.termH) {
		return
	}
	t.termW, t.termH = termW, termH
	t.canvas.Resize(termW, termH)
	t.prevScreen = screenNone
}

// Run creates a Terminal and runs it until it finishes.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	return NewTerminal(r, w, opts).Run(ctx)
}
