package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Game.TickDuration() != time.Second/60 {
		t.Errorf("tick duration = %v, want %v", cfg.Game.TickDuration(), time.Second/60)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Width != 960 || cfg.Game.Height != 540 {
		t.Errorf("arena = %vx%v, want 960x540", cfg.Game.Width, cfg.Game.Height)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blaster.toml")
	data := `
[game]
tick_rate = 30
seed = 42

[store]
backend = "sqlite"
path = "scores.db"

[audio]
enabled = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.TickRate != 30 || cfg.Game.Seed != 42 {
		t.Errorf("tick rate/seed = %d/%d, want 30/42", cfg.Game.TickRate, cfg.Game.Seed)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.Path != "scores.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Audio.Enabled {
		t.Error("expected audio disabled")
	}
	// Untouched keys keep their defaults.
	if cfg.Game.Width != 960 || cfg.Audio.Volume != 0.35 {
		t.Errorf("defaults lost: width %v volume %v", cfg.Game.Width, cfg.Audio.Volume)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blaster.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BLASTER_LOG_LEVEL", "debug")
	t.Setenv("BLASTER_MUSIC_VOLUME", "0.8")
	t.Setenv("BLASTER_SSH_PORT", "23234")
	t.Setenv("BLASTER_MUSIC_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Audio.Volume != 0.8 || cfg.Audio.Enabled {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.SSH.Port != "23234" {
		t.Errorf("ssh port = %q, want 23234", cfg.SSH.Port)
	}
}

func TestBadEnvValue(t *testing.T) {
	t.Setenv("BLASTER_TICK_RATE", "fast")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "BLASTER_TICK_RATE") {
		t.Errorf("err = %v, want BLASTER_TICK_RATE parse error", err)
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("BLASTER_DISPLAY_HOST=blaster.example\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("BLASTER_DISPLAY_HOST") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Web.DisplayHost != "blaster.example" {
		t.Errorf("display host = %q, want blaster.example", cfg.Web.DisplayHost)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Game.Width = 0 }},
		{"negative tick rate", func(c *Config) { c.Game.TickRate = -1 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"loud music", func(c *Config) { c.Audio.Volume = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blaster.toml")
	cfg := Default()
	cfg.Game.Seed = 9
	cfg.Store.Path = "elsewhere.msgpack"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BLASTER_TEST_KEY", "set")
	if got := GetEnv("BLASTER_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("BLASTER_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "blaster.log")
	logger, closeLog, err := LogConfig{Level: "info", File: path}.NewLogger(os.Stderr, "test")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown", "score", 10)
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "shown") || !strings.Contains(out, "score=10") {
		t.Errorf("log output %q missing info line", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("log output %q contains debug line", out)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	if _, _, err := (LogConfig{Level: "loud"}).NewLogger(os.Stderr, ""); err == nil {
		t.Error("expected error for unknown level")
	}
}
