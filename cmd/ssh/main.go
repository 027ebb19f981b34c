package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/byteblaster/internal/config"
	"github.com/tomz197/byteblaster/internal/draw"
	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/loop"
	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/store"
)

// Inactivity limits for remote players.
const (
	idleWarn = 90 * time.Second
	idleKick = 120 * time.Second
)

// shutdownGrace is how long connected players get to leave after a
// shutdown notice.
const shutdownGrace = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ssh server error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := cfg.Log.NewLogger(os.Stderr, "ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", cfg.SSH.Host, "port", cfg.SSH.Port, "hostKey", cfg.SSH.HostKey, "workingDir", workingDir)

	// One store shared by every connection; Save never lowers the record.
	scores, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer scores.Close()

	hub := loop.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &gameServer{
		ctx:    ctx,
		cfg:    cfg,
		hub:    hub,
		scores: scores,
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			srv.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting SSH server", "addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
	}
	logger.Info("shutting down server", "players", hub.Count())

	// Notify players and wait for them to disconnect.
	if !hub.Shutdown(shutdownGrace) {
		logger.Warn("players still connected after grace period", "players", hub.Count())
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// gameServer runs one independent game per SSH session.
type gameServer struct {
	ctx    context.Context
	cfg    config.Config
	hub    *loop.Hub
	scores store.Store
	logger *log.Logger
}

// middleware handles SSH sessions and runs the game.
func (g *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Track terminal size from window change events
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.Options{
			Game: game.Options{
				Arena:  object.Arena{Width: g.cfg.Game.Width, Height: g.cfg.Game.Height},
				Store:  g.scores,
				Rand:   game.NewRand(g.cfg.Game.Seed),
				Logger: logger,
			},
			TermSizeFunc: sizeTracker.getSize,
			FrameRate:    g.cfg.Game.TickRate,
			Hub:          g.hub,
			User:         sess.User(),
			IdleWarn:     idleWarn,
			IdleKick:     idleKick,
		}

		ctx, cancel := context.WithCancel(g.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		if err := loop.Run(ctx, sess, sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
