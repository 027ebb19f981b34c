package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/byteblaster/internal/draw"
	"github.com/tomz197/byteblaster/internal/game"
	"github.com/tomz197/byteblaster/internal/object"
)

var (
	textColor   = object.White
	dimColor    = object.Gray
	titleColor  = object.Cyan
	alertColor  = object.Red
	buttonColor = object.Color{R: 60, G: 130, B: 220}
	buttonText  = object.White
	overlayDim  = object.Color{R: 10, G: 10, B: 14}
)

// currentScreen picks the screen for this frame.
func (t *Terminal) currentScreen() screen {
	switch {
	case t.shutdown:
		return screenShutdown
	case t.idle:
		return screenIdle
	}
	switch t.session.Mode {
	case game.ModePlaying:
		return screenPlaying
	case game.ModePaused:
		return screenPaused
	case game.ModeGameOver:
		return screenGameOver
	default:
		return screenStart
	}
}

// drawFrame draws the current frame.
func (t *Terminal) drawFrame() error {
	// On screen changes and resizes, do a full terminal clear so text from
	// the previous screen doesn't persist outside the canvas.
	scr := t.currentScreen()
	cleared := scr != t.prevScreen
	if cleared {
		t.cw.ClearScreen()
		t.canvas.ForceRedraw()
		t.prevScreen = scr
	}

	t.session.FillSnapshot(&t.snap)

	switch scr {
	case screenShutdown:
		t.canvas.Fill(overlayDim)
		t.drawShutdownScreen()
	case screenIdle:
		t.canvas.Fill(overlayDim)
		t.drawInactivityScreen()
	default:
		drawScene(t.canvas, &t.snap)
		drawOverlay(t.canvas, &t.snap)
	}

	if err := t.canvas.Render(t.cw); err != nil {
		return err
	}

	// Border only changes with the terminal size.
	if cleared {
		t.canvas.RenderBorder(t.cw)
	}

	return t.cw.Flush()
}

// drawScene paints the arena and every entity of snap.
func drawScene(c *draw.Canvas, snap *game.Snapshot) {
	c.Fill(snap.Background)

	for _, s := range snap.Stars {
		c.FillCircle(draw.Point(s.Pos), s.Radius, s.Color)
	}

	if snap.Mode == game.ModeStart {
		c.FillRect(draw.Point(snap.PlayButton.Min), draw.Point(snap.PlayButton.Max), buttonColor)
		return
	}

	for _, p := range snap.Particles {
		c.FillCircle(draw.Point(p.Pos), p.Radius, p.Color)
	}
	for _, b := range snap.Bullets {
		c.FillCircle(draw.Point(b.Pos), b.Radius, b.Color)
	}
	for _, e := range snap.Enemies {
		c.FillCircle(draw.Point(e.Pos), e.Radius, e.Color)
	}

	if snap.HasAimLine {
		c.DrawLine(draw.Point(snap.AimFrom), draw.Point(snap.AimTo), textColor)
	}
	c.FillCircle(draw.Point(snap.Player.Pos), snap.Player.Radius, snap.Player.Color)
}

// drawOverlay writes the HUD and the text of the current mode.
func drawOverlay(c *draw.Canvas, snap *game.Snapshot) {
	mid := c.Rows() / 2

	switch snap.Mode {
	case game.ModeStart:
		drawStartScreen(c, snap, mid)
		return
	case game.ModePaused:
		c.DrawTextCentered(mid-1, "PAUSED", titleColor)
		c.DrawTextCentered(mid+1, "Press P to resume", dimColor)
	case game.ModeGameOver:
		drawGameOverScreen(c, snap, mid)
	}

	drawHUD(c, snap)
}

// drawStartScreen draws the title screen.
func drawStartScreen(c *draw.Canvas, snap *game.Snapshot, mid int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___      _         ___ _         _           `,
		`| _ )_  _| |_ ___  | _ ) |__ _ __| |_ ___ _ _ `,
		`| _ \ || |  _/ -_) | _ \ / _' (_-<  _/ -_) '_|`,
		`|___/\_, |\__\___| |___/_\__,_/__/\__\___|_|  `,
		`     |__/                                     `,
	}

	top := max(1, mid-len(titleArt)-3)
	if c.Columns() >= len(titleArt[0]) {
		for i, line := range titleArt {
			c.DrawTextCentered(top+i, line, titleColor)
		}
	} else {
		c.DrawTextCentered(top+len(titleArt)/2, "BYTE BLASTER", titleColor)
	}

	col, row := c.LogicalToTerminal(snap.PlayButton.Center().X, snap.PlayButton.Center().Y)
	label := "PLAY"
	c.DrawText(col-len(label)/2, row, label, buttonText)

	controlLines := []string{
		"Click PLAY or press ENTER",
		"",
		"WASD / arrows . . . .  Move",
		"Mouse . . . . . . . . . Aim",
		"Hold button / F . . .  Fire",
		"SPACE . . . . . . . .  Dash",
		"P . . . . . . . . . . Pause",
		"Q / ESC . . . . . . .  Quit",
	}

	// Place the controls under the button when they fit.
	y := row + 3
	if y+len(controlLines) > c.Rows() {
		y = row + 2
		controlLines = controlLines[:1]
	}
	for i, line := range controlLines {
		c.DrawTextCentered(y+i, line, dimColor)
	}

	if snap.HighScore > 0 {
		c.DrawTextCentered(c.Rows(), fmt.Sprintf("Best: %d", snap.HighScore), textColor)
	}
}

// drawGameOverScreen draws the game over text in the middle of the arena.
func drawGameOverScreen(c *draw.Canvas, snap *game.Snapshot, mid int) {
	c.DrawTextCentered(mid-2, "GAME OVER", alertColor)
	c.DrawTextCentered(mid, fmt.Sprintf("Score: %d", snap.Score), textColor)
	if snap.Score > 0 && snap.Score >= snap.HighScore {
		c.DrawTextCentered(mid+1, "New high score!", titleColor)
	} else {
		c.DrawTextCentered(mid+1, fmt.Sprintf("Best: %d", snap.HighScore), dimColor)
	}
	c.DrawTextCentered(mid+3, "Press R to restart", dimColor)
}

// drawHUD draws lives, score, wave and best along the top row.
func drawHUD(c *draw.Canvas, snap *game.Snapshot) {
	c.DrawText(2, 1, livesText(snap.Lives, snap.MaxLives), alertColor)

	stats := fmt.Sprintf("Score %d  Wave %d  Best %d", snap.Score, snap.Wave, snap.HighScore)
	c.DrawText(c.Columns()-len(stats), 1, stats, textColor)
}

// livesText renders remaining lives as filled boxes and lost ones as empty.
func livesText(lives, maxLives int) string {
	lives = max(0, min(lives, maxLives))
	return strings.Repeat("■", lives) + strings.Repeat("□", maxLives-lives)
}

// drawInactivityScreen draws the inactivity warning screen.
func (t *Terminal) drawInactivityScreen() {
	c := t.canvas
	mid := c.Rows() / 2

	c.DrawTextCentered(mid-2, "INACTIVITY WARNING", alertColor)

	left := int((t.idleKick - time.Since(t.lastInput)).Seconds())
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", max(0, left))
	c.DrawTextCentered(mid, msg, textColor)
	c.DrawTextCentered(mid+2, "Press any key to continue", dimColor)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (t *Terminal) drawShutdownScreen() {
	c := t.canvas
	mid := c.Rows() / 2

	c.DrawTextCentered(mid-3, "SERVER SHUTTING DOWN", alertColor)
	c.DrawTextCentered(mid-1, "The server is restarting for maintenance.", textColor)
	c.DrawTextCentered(mid, "Please reconnect in a moment.", textColor)

	remaining := int(t.shutdownIn) + 1
	c.DrawTextCentered(mid+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), textColor)
	c.DrawTextCentered(mid+4, "Press Q to disconnect now", dimColor)
}
