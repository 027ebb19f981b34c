package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/byteblaster/internal/audio"
	"github.com/tomz197/byteblaster/internal/config"
	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/loop"
	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/store"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	writeConfig := flag.String("write-config", "", "write the resolved configuration to this file and exit")
	flag.Parse()

	if err := run(*configPath, *writeConfig); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, writeConfig string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if writeConfig != "" {
		return config.Save(writeConfig, cfg)
	}

	// The terminal belongs to the game; logs only go to a file.
	logger, closeLog, err := cfg.Log.NewLogger(io.Discard, "game")
	if err != nil {
		return err
	}
	defer closeLog()

	scores, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer scores.Close()

	music := audio.NewMusic(cfg.Audio, logger)
	music.Start()
	defer music.Stop()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := loop.Options{
		Game: game.Options{
			Arena:  object.Arena{Width: cfg.Game.Width, Height: cfg.Game.Height},
			Store:  scores,
			Rand:   game.NewRand(cfg.Game.Seed),
			Logger: logger,
		},
		FrameRate: cfg.Game.TickRate,
	}
	return loop.Run(context.Background(), os.Stdin, os.Stdout, opts)
}
