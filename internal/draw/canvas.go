package draw

import (
	"image/color"
	"io"
	"math"
	"strconv"
	"unicode/utf8"
)

// rgb is a packed 0xRRGGBB color.
type rgb uint32

func toRGB(c color.Color) rgb {
	r, g, b, _ := c.RGBA()
	return rgb(r>>8)<<16 | rgb(g>>8)<<8 | rgb(b>>8)
}

func (c rgb) parts() (r, g, b int) {
	return int(c >> 16 & 0xff), int(c >> 8 & 0xff), int(c & 0xff)
}

// cell is one rendered terminal character.
type cell struct {
	ch     rune
	fg, bg rgb
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Game objects draw in logical coordinates; the
// canvas keeps the logical aspect ratio and centers itself in the terminal.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int   // Terminal columns
	termHeight     int   // Terminal rows
	cols           int   // Columns used by the render area
	rows           int   // Rows used by the render area
	subPixelHeight int   // rows * 2
	pixels         []rgb // Flat slice: [y * cols + x]
	text           []rune
	textFg         []rgb
	prev           []cell // Last frame written to the terminal
	redraw         bool   // Ignore prev on the next Render

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // cols / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight

	// 0-based terminal offsets that center the render area.
	offsetCol int
	offsetRow int

	renderBuf []byte
}

// NewScaledCanvas creates a canvas for a terminal of termWidth x termHeight
// cells showing a logical area of logicalWidth x logicalHeight.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize fits the render area into a terminal of the given size. The next
// Render repaints every cell when the size changed.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	// Largest area with the logical aspect ratio, in sub-pixels.
	aspect := c.logicalWidth / c.logicalHeight
	pw := float64(termWidth)
	ph := pw / aspect
	if ph > float64(termHeight*2) {
		ph = float64(termHeight * 2)
		pw = ph * aspect
	}
	cols := max(1, int(pw))
	rows := max(1, int(math.Ceil(ph/2)))

	c.termWidth = termWidth
	c.termHeight = termHeight
	c.cols = cols
	c.rows = rows
	c.subPixelHeight = rows * 2
	c.offsetCol = (termWidth - cols) / 2
	c.offsetRow = (termHeight - rows) / 2
	c.scaleX = float64(cols) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight

	c.pixels = make([]rgb, cols*c.subPixelHeight)
	c.text = make([]rune, cols*rows)
	c.textFg = make([]rgb, cols*rows)
	c.prev = make([]cell, cols*rows)
	c.redraw = true
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// Fill paints every pixel with bg and removes all text.
func (c *Canvas) Fill(bg color.Color) {
	v := toRGB(bg)
	for i := range c.pixels {
		c.pixels[i] = v
	}
	clear(c.text)
}

// setPixel sets a pixel at sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, v rgb) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.cols+x] = v
	}
}

// SetFloat sets the pixel under a logical point.
func (c *Canvas) SetFloat(x, y float64, col color.Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), toRGB(col))
}

// FillCircle fills a disc given in logical coordinates. Discs smaller than
// a pixel still light the pixel under their center.
func (c *Canvas) FillCircle(center Point, radius float64, col color.Color) {
	v := toRGB(col)
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY

	x0, x1 := int(math.Floor(cx-rx)), int(math.Ceil(cx+rx))
	y0, y1 := int(math.Floor(cy-ry)), int(math.Ceil(cy+ry))

	drawn := false
	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.setPixel(x, y, v)
				drawn = true
			}
		}
	}
	if !drawn {
		c.setPixel(int(math.Floor(cx)), int(math.Floor(cy)), v)
	}
}

// FillRect fills the logical rectangle [lo, hi).
func (c *Canvas) FillRect(lo, hi Point, col color.Color) {
	v := toRGB(col)
	x0, x1 := int(math.Floor(lo.X*c.scaleX)), int(math.Ceil(hi.X*c.scaleX))
	y0, y1 := int(math.Floor(lo.Y*c.scaleY)), int(math.Ceil(hi.Y*c.scaleY))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y, v)
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col color.Color) {
	v := toRGB(col)
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, v)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawText places s at a 1-based cell of the render area. Text is clipped
// at the area edges and drawn over the pixel colors of its row.
func (c *Canvas) DrawText(col, row int, s string, fg color.Color) {
	if row < 1 || row > c.rows {
		return
	}
	v := toRGB(fg)
	x := col - 1
	for _, r := range s {
		if x >= c.cols {
			return
		}
		if x >= 0 {
			i := (row-1)*c.cols + x
			c.text[i] = r
			c.textFg[i] = v
		}
		x++
	}
}

// DrawTextCentered places s horizontally centered on row.
func (c *Canvas) DrawTextCentered(row int, s string, fg color.Color) {
	c.DrawText(c.cols/2-utf8.RuneCountInString(s)/2+1, row, s, fg)
}

// Render writes the changed cells to w using 24-bit color escape sequences.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]

	var (
		curFg, curBg rgb
		haveColor    bool
		nextCol      = -1 // Column the cursor sits on after the last write
		nextRow      = -1
	)

	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			cur := c.cellAt(row, col)
			if !c.redraw && c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			if row != nextRow || col != nextCol {
				buf = appendCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !haveColor || cur.fg != curFg {
				buf = appendColor(buf, "38", cur.fg)
				curFg = cur.fg
			}
			if !haveColor || cur.bg != curBg {
				buf = appendColor(buf, "48", cur.bg)
				curBg = cur.bg
			}
			haveColor = true
			buf = utf8.AppendRune(buf, cur.ch)
			nextRow, nextCol = row, col+1
		}
	}
	c.redraw = false

	if len(buf) == 0 {
		c.renderBuf = buf
		return nil
	}
	buf = append(buf, "\033[0m"...)
	c.renderBuf = buf

	_, err := w.Write(buf)
	return err
}

func (c *Canvas) cellAt(row, col int) cell {
	top := c.pixels[row*2*c.cols+col]
	bottom := c.pixels[(row*2+1)*c.cols+col]

	if r := c.text[row*c.cols+col]; r != 0 {
		return cell{ch: r, fg: c.textFg[row*c.cols+col], bg: top}
	}
	return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
}

func appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func appendColor(buf []byte, layer string, v rgb) []byte {
	r, g, b := v.parts()
	buf = append(buf, "\033["...)
	buf = append(buf, layer...)
	buf = append(buf, ";2;"...)
	buf = strconv.AppendInt(buf, int64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(b), 10)
	return append(buf, 'm')
}

// RenderBorder draws a box border around the render area where the
// terminal leaves room for it.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1 // Room for left/right bars
	hasV := c.offsetRow >= 1 // Room for top/bottom bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1

	line := make([]rune, 0, c.cols+2)
	horizontal := func(l, r rune) string {
		line = line[:0]
		if hasH {
			line = append(line, l)
		}
		for range c.cols {
			line = append(line, '─')
		}
		if hasH {
			line = append(line, r)
		}
		return string(line)
	}

	start := c.offsetCol + 1
	if hasH {
		start = left
	}
	if hasV {
		cw.WriteAt(start, top, horizontal('┌', '┐'))
		cw.WriteAt(start, bottom, horizontal('└', '┘'))
	}
	if hasH {
		for row := c.offsetRow + 1; row < bottom; row++ {
			cw.WriteAt(left, row, "│")
			cw.WriteAt(right, row, "│")
		}
	}
}

// Columns returns the width of the render area in cells.
func (c *Canvas) Columns() int {
	return c.cols
}

// Rows returns the height of the render area in cells.
func (c *Canvas) Rows() int {
	return c.rows
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// LogicalToTerminal converts a logical point to a 1-based cell of the
// render area.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal cell (as reported by mouse
// events) to the logical point at the center of that cell.
func (c *Canvas) TerminalToLogical(col, row int) Point {
	x := (float64(col-1-c.offsetCol) + 0.5) / c.scaleX
	y := (float64(row-1-c.offsetRow)*2 + 1) / c.scaleY
	return Point{X: x, Y: y}
}
