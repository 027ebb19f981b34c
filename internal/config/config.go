package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory before the environment
// overrides are applied. It is optional.
const DotEnvFile = ".env"

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the resolved runtime configuration.
type Config struct {
	Game  GameConfig  `toml:"game"`
	Store StoreConfig `toml:"store"`
	Audio AudioConfig `toml:"audio"`
	Log   LogConfig   `toml:"log"`
	SSH   SSHConfig   `toml:"ssh"`
	Web   WebConfig   `toml:"web"`
}

type GameConfig struct {
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	TickRate int     `toml:"tick_rate"`
	Seed     uint64  `toml:"seed"` // 0 picks a random seed
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"` // A .msgpack extension selects the msgpack codec
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Music   string  `toml:"music"`
	Volume  float64 `toml:"volume"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type SSHConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	HostKey string `toml:"host_key"`
}

type WebConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	DisplayHost string `toml:"display_host"` // Host name shown in the ssh command
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Width:    960,
			Height:   540,
			TickRate: 60,
		},
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    "byte_blaster_save.json",
		},
		Audio: AudioConfig{
			Enabled: true,
			Music:   "music.mp3",
			Volume:  0.35,
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Host:    "0.0.0.0",
			Port:    "2222",
			HostKey: ".ssh/id_ed25519",
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "localhost",
		},
	}
}

// TickDuration is the target frame period.
func (c GameConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Load resolves the configuration: defaults, then the optional .env file,
// then the TOML file at path (skipped when path is empty), then BLASTER_*
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Game.Width <= 0 || c.Game.Height <= 0:
		return fmt.Errorf("invalid arena size %vx%v", c.Game.Width, c.Game.Height)
	case c.Game.TickRate <= 0:
		return fmt.Errorf("invalid tick rate %d", c.Game.TickRate)
	case c.Store.Backend != BackendFile && c.Store.Backend != BackendSQLite:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("music volume %v outside [0, 1]", c.Audio.Volume)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Store.Backend = GetEnv("BLASTER_STORE", cfg.Store.Backend)
	cfg.Store.Path = GetEnv("BLASTER_SAVE_PATH", cfg.Store.Path)
	cfg.Audio.Music = GetEnv("BLASTER_MUSIC", cfg.Audio.Music)
	cfg.Log.Level = GetEnv("BLASTER_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = GetEnv("BLASTER_LOG_FILE", cfg.Log.File)
	cfg.SSH.Host = GetEnv("BLASTER_SSH_HOST", cfg.SSH.Host)
	cfg.SSH.Port = GetEnv("BLASTER_SSH_PORT", cfg.SSH.Port)
	cfg.SSH.HostKey = GetEnv("BLASTER_SSH_HOST_KEY", cfg.SSH.HostKey)
	cfg.Web.Host = GetEnv("BLASTER_WEB_HOST", cfg.Web.Host)
	cfg.Web.Port = GetEnv("BLASTER_WEB_PORT", cfg.Web.Port)
	cfg.Web.DisplayHost = GetEnv("BLASTER_DISPLAY_HOST", cfg.Web.DisplayHost)

	parsers := []struct {
		key   string
		parse func(string) error
	}{
		{"BLASTER_WIDTH", floatInto(&cfg.Game.Width)},
		{"BLASTER_HEIGHT", floatInto(&cfg.Game.Height)},
		{"BLASTER_MUSIC_VOLUME", floatInto(&cfg.Audio.Volume)},
		{"BLASTER_TICK_RATE", func(s string) (err error) {
			cfg.Game.TickRate, err = strconv.Atoi(s)
			return err
		}},
		{"BLASTER_SEED", func(s string) (err error) {
			cfg.Game.Seed, err = strconv.ParseUint(s, 10, 64)
			return err
		}},
		{"BLASTER_MUSIC_ENABLED", func(s string) (err error) {
			cfg.Audio.Enabled, err = strconv.ParseBool(s)
			return err
		}},
	}
	for _, p := range parsers {
		v, ok := os.LookupEnv(p.key)
		if !ok {
			continue
		}
		if err := p.parse(v); err != nil {
			return fmt.Errorf("%s: %w", p.key, err)
		}
	}
	return nil
}

func floatInto(dst *float64) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.ParseFloat(s, 64)
		return err
	}
}
