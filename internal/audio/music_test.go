package audio

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/tomz197/byteblaster/internal/config"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestMissingFileStaysSilent(t *testing.T) {
	m := NewMusic(config.AudioConfig{
		Enabled: true,
		Music:   filepath.Join(t.TempDir(), "missing.mp3"),
		Volume:  0.35,
	}, quietLogger())

	m.Start()
	if m.Playing() {
		t.Error("expected no playback for a missing file")
	}
	m.Stop()
}

func TestCorruptFileStaysSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music.mp3")
	if err := os.WriteFile(path, []byte("definitely not an mp3"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewMusic(config.AudioConfig{Enabled: true, Music: path, Volume: 1}, quietLogger())

	m.Start()
	if m.Playing() {
		t.Error("expected no playback for a corrupt file")
	}
}

func TestDisabledMusic(t *testing.T) {
	m := NewMusic(config.AudioConfig{Enabled: false, Music: "music.mp3"}, quietLogger())
	m.Start()
	if m.Playing() {
		t.Error("expected disabled music to stay off")
	}
}

func TestDecodeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(2205, generators.Silence(-1)), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	stream, got, err := decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer stream.Close()

	if got.SampleRate != 22050 {
		t.Errorf("sample rate = %v, want 22050", got.SampleRate)
	}
	if stream.Len() != 2205 {
		t.Errorf("len = %d, want 2205", stream.Len())
	}
}

func TestDecodeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := decode(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		level  float64
		gain   float64
		silent bool
	}{
		{0, 0, true},
		{-1, 0, true},
		{1, 0, false},
		{0.5, -1, false},
		{0.25, -2, false},
		{3, 0, false},
	}
	for _, tt := range tests {
		gain, silent := volume(tt.level)
		if silent != tt.silent || math.Abs(gain-tt.gain) > 1e-9 {
			t.Errorf("volume(%v) = %v, %v, want %v, %v", tt.level, gain, silent, tt.gain, tt.silent)
		}
	}
}
