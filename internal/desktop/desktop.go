// Package desktop runs a game session in a native window with ebiten.
package desktop

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/object"
)

const (
	defaultTPS  = 60
	windowTitle = "Byte Blaster"
	lineHeight  = 16.0
)

var (
	buttonColor = object.Color{R: 60, G: 130, B: 220}
	hudColor    = object.White
	dimColor    = object.Gray
	titleColor  = object.Cyan
	alertColor  = object.Red
	shadeColor  = color.RGBA{0, 0, 0, 140}
)

// Game adapts a Session to ebiten.Game.
type Game struct {
	session *game.Session
	snap    game.Snapshot
	input   inputSource
	face    text.Face
	dt      float64
}

var _ ebiten.Game = (*Game)(nil)

// New creates a windowed game stepping tps times per second.
func New(opts game.Options, tps int) *Game {
	if tps <= 0 {
		tps = defaultTPS
	}
	return &Game{
		session: game.NewSession(opts),
		input:   ebitenInput{},
		face:    text.NewGoXFace(basicfont.Face7x13),
		dt:      1 / float64(tps),
	}
}

// Update steps the session once per tick.
func (g *Game) Update() error {
	g.session.Tick(readInput(g.input), g.dt)
	if !g.session.Running() {
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the logical screen at the arena size; ebiten scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	a := g.session.Arena()
	return int(a.Width), int(a.Height)
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	g.session.FillSnapshot(&g.snap)
	snap := &g.snap

	screen.Fill(snap.Background)
	for _, s := range snap.Stars {
		fillCircle(screen, s)
	}

	switch snap.Mode {
	case game.ModeStart:
		g.drawStart(screen)
		return
	case game.ModePlaying, game.ModePaused, game.ModeGameOver:
		g.drawWorld(screen)
	}

	g.drawHUD(screen)

	cx, cy := snap.Arena.Width/2, snap.Arena.Height/2
	switch snap.Mode {
	case game.ModePaused:
		vector.DrawFilledRect(screen, 0, 0, float32(snap.Arena.Width), float32(snap.Arena.Height), shadeColor, false)
		g.drawText(screen, "PAUSED", cx, cy-lineHeight, titleColor)
		g.drawText(screen, "Press P to resume", cx, cy+lineHeight, dimColor)
	case game.ModeGameOver:
		g.drawText(screen, "GAME OVER", cx, cy-2*lineHeight, alertColor)
		g.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), cx, cy, hudColor)
		g.drawText(screen, fmt.Sprintf("Best: %d", snap.HighScore), cx, cy+lineHeight, dimColor)
		g.drawText(screen, "Press R to restart", cx, cy+3*lineHeight, dimColor)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	snap := &g.snap
	for _, p := range snap.Particles {
		fillCircle(screen, p)
	}
	for _, b := range snap.Bullets {
		fillCircle(screen, b)
	}
	for _, e := range snap.Enemies {
		fillCircle(screen, e)
	}
	if snap.HasAimLine {
		vector.StrokeLine(screen,
			float32(snap.AimFrom.X), float32(snap.AimFrom.Y),
			float32(snap.AimTo.X), float32(snap.AimTo.Y),
			2, hudColor, true)
	}
	fillCircle(screen, snap.Player)
}

func (g *Game) drawStart(screen *ebiten.Image) {
	snap := &g.snap
	btn := snap.PlayButton
	vector.DrawFilledRect(screen,
		float32(btn.Min.X), float32(btn.Min.Y),
		float32(btn.Max.X-btn.Min.X), float32(btn.Max.Y-btn.Min.Y),
		buttonColor, false)
	c := btn.Center()
	g.drawText(screen, "PLAY", c.X, c.Y, hudColor)

	g.drawText(screen, "BYTE BLASTER", c.X, btn.Min.Y-4*lineHeight, titleColor)
	g.drawText(screen, "Click PLAY or press ENTER", c.X, btn.Max.Y+2*lineHeight, dimColor)
	g.drawText(screen, "WASD move, mouse aims, hold button to fire, SPACE dash, P pause", c.X, btn.Max.Y+3*lineHeight, dimColor)
	if snap.HighScore > 0 {
		g.drawText(screen, fmt.Sprintf("Best: %d", snap.HighScore), c.X, btn.Max.Y+5*lineHeight, hudColor)
	}
}

// drawHUD draws lives boxes in the top left and the stats line next to them.
func (g *Game) drawHUD(screen *ebiten.Image) {
	snap := &g.snap
	const box, gap, margin = 14, 6, 12
	for i := range snap.MaxLives {
		x := float32(margin + i*(box+gap))
		if i < snap.Lives {
			vector.DrawFilledRect(screen, x, margin, box, box, alertColor, false)
		} else {
			vector.StrokeRect(screen, x, margin, box, box, 2, alertColor, false)
		}
	}

	stats := fmt.Sprintf("Score: %d   Wave: %d   Best: %d", snap.Score, snap.Wave, snap.HighScore)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(margin+snap.MaxLives*(box+gap)+gap), margin)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, stats, g.face, op)
}

// drawText draws s centered on (x, y).
func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, g.face, op)
}

func fillCircle(screen *ebiten.Image, c game.Circle) {
	vector.DrawFilledCircle(screen, float32(c.Pos.X), float32(c.Pos.Y), float32(c.Radius), c.Color, true)
}

// Run opens the window and blocks until the player quits or the window
// closes.
func Run(g *Game, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	a := g.session.Arena()
	ebiten.SetWindowSize(int(a.Width*scale), int(a.Height*scale))
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(int(1/g.dt + 0.5))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Session returns the session the window drives.
func (g *Game) Session() *game.Session {
	return g.session
}
