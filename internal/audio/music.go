// Package audio plays the looping background music. Every failure (no
// device, missing or unreadable file) leaves the game silent and running.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/tomz197/byteblaster/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// The speaker is process-wide and can only be initialized once.
var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	return speakerErr
}

// ErrUnsupportedFormat is returned for music files that are neither mp3
// nor wav.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Music is the looping background track.
type Music struct {
	cfg    config.AudioConfig
	logger *log.Logger

	mu      sync.Mutex
	stream  beep.StreamSeekCloser
	playing bool
}

// NewMusic creates a stopped player for cfg.Music.
func NewMusic(cfg config.AudioConfig, logger *log.Logger) *Music {
	if logger == nil {
		logger = log.Default()
	}
	return &Music{cfg: cfg, logger: logger}
}

// Start begins looping playback. Failures are logged and swallowed.
func (m *Music) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing || !m.cfg.Enabled {
		return
	}
	if err := m.start(); err != nil {
		m.logger.Debug("music disabled", "path", m.cfg.Music, "err", err)
	}
}

func (m *Music) start() error {
	stream, format, err := decode(m.cfg.Music)
	if err != nil {
		return err
	}
	if err := initSpeaker(); err != nil {
		stream.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	var s beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	gain, silent := volume(m.cfg.Volume)
	speaker.Play(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   gain,
		Silent:   silent,
	})

	m.stream = stream
	m.playing = true
	return nil
}

// Stop halts playback and releases the file.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing {
		return
	}
	speaker.Clear()
	if err := m.stream.Close(); err != nil {
		m.logger.Debug("close music", "err", err)
	}
	m.stream = nil
	m.playing = false
}

// Playing reports whether the track is running.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// decode opens path and picks the decoder from its extension.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}

// volume maps a linear level in [0,1] to an effects.Volume exponent in base 2.
func volume(level float64) (gain float64, silent bool) {
	if level <= 0 {
		return 0, true
	}
	return math.Log2(min(level, 1)), false
}
