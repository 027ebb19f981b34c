package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tomz197/byteblaster/internal/audio"
	"github.com/tomz197/byteblaster/internal/config"
	"github.com/tomz197/byteblaster/internal/desktop"
	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/store"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	scale := flag.Float64("scale", 1, "window scale factor")
	flag.Parse()

	if err := run(*configPath, *scale); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, scale float64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := cfg.Log.NewLogger(os.Stderr, "desktop")
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

	g := desktop.New(game.Options{
		Arena:  object.Arena{Width: cfg.Game.Width, Height: cfg.Game.Height},
		Store:  scores,
		Rand:   game.NewRand(cfg.Game.Seed),
		Logger: logger,
	}, cfg.Game.TickRate)
	return desktop.Run(g, scale)
}
