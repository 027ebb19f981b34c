package desktop

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/byteblaster/internal/game"
)

type fakeInput struct {
	pressed     map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
	x, y        int
	down, click bool
}

func (f fakeInput) Pressed(k ebiten.Key) bool     { return f.pressed[k] }
func (f fakeInput) JustPressed(k ebiten.Key) bool { return f.justPressed[k] }
func (f fakeInput) Cursor() (int, int)            { return f.x, f.y }
func (f fakeInput) ButtonDown() bool              { return f.down }
func (f fakeInput) ButtonJustDown() bool          { return f.click }

func TestReadInputMovement(t *testing.T) {
	in := readInput(fakeInput{
		pressed: map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyArrowLeft: true},
		x:       100, y: 200,
	})
	if !in.Up || !in.Left || in.Down || in.Right {
		t.Errorf("movement = %+v", in.Movement())
	}
	if !in.HasAim || in.Aim.X != 100 || in.Aim.Y != 200 {
		t.Errorf("aim = %v (has %v), want (100,200)", in.Aim, in.HasAim)
	}
	if in.Fire || in.Click {
		t.Error("fire without button")
	}
}

func TestReadInputFire(t *testing.T) {
	in := readInput(fakeInput{down: true, click: true})
	if !in.Fire || !in.Click {
		t.Errorf("mouse fire = %v click = %v", in.Fire, in.Click)
	}

	in = readInput(fakeInput{pressed: map[ebiten.Key]bool{ebiten.KeyF: true}})
	if !in.Fire || in.Click {
		t.Errorf("key fire = %v click = %v", in.Fire, in.Click)
	}
}

func TestReadInputEvents(t *testing.T) {
	tests := []struct {
		key   ebiten.Key
		check func(in game.Input) bool
	}{
		{ebiten.KeyEnter, func(r game.Input) bool { return r.Confirm }},
		{ebiten.KeyP, func(r game.Input) bool { return r.Pause }},
		{ebiten.KeyR, func(r game.Input) bool { return r.Restart }},
		{ebiten.KeySpace, func(r game.Input) bool { return r.Dash }},
		{ebiten.KeyQ, func(r game.Input) bool { return r.Quit }},
		{ebiten.KeyEscape, func(r game.Input) bool { return r.Quit }},
	}
	for _, tt := range tests {
		held := readInput(fakeInput{pressed: map[ebiten.Key]bool{tt.key: true}})
		if tt.check(held) {
			t.Errorf("%v held without a fresh press triggered the event", tt.key)
		}
		tapped := readInput(fakeInput{justPressed: map[ebiten.Key]bool{tt.key: true}})
		if !tt.check(tapped) {
			t.Errorf("%v press not reported", tt.key)
		}
	}
}
