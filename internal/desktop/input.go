package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/physics"
)

// inputSource is the slice of ebiten's input API the game reads.
type inputSource interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
	Cursor() (x, y int)
	ButtonDown() bool
	ButtonJustDown() bool
}

// ebitenInput reads the live keyboard and mouse.
type ebitenInput struct{}

func (ebitenInput) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenInput) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
func (ebitenInput) Cursor() (int, int)            { return ebiten.CursorPosition() }
func (ebitenInput) ButtonDown() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
func (ebitenInput) ButtonJustDown() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// readInput collects one frame of input. The cursor is already in arena
// coordinates because Layout returns the arena size.
func readInput(src inputSource) game.Input {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if src.Pressed(k) {
				return true
			}
		}
		return false
	}
	tapped := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if src.JustPressed(k) {
				return true
			}
		}
		return false
	}

	x, y := src.Cursor()
	return game.Input{
		Up:      held(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:    held(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:    held(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right:   held(ebiten.KeyD, ebiten.KeyArrowRight),
		Aim:     physics.V(float64(x), float64(y)),
		HasAim:  true,
		Fire:    src.ButtonDown() || held(ebiten.KeyF),
		Click:   src.ButtonJustDown(),
		Confirm: tapped(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		Pause:   tapped(ebiten.KeyP),
		Restart: tapped(ebiten.KeyR),
		Dash:    tapped(ebiten.KeySpace),
		Quit:    tapped(ebiten.KeyQ, ebiten.KeyEscape),
	}
}
