// Package draw renders to a terminal: a 24-bit color canvas built from
// half-block characters, text overlays and the escape sequences that set
// up and restore the terminal.
package draw

// Point represents a 2D coordinate in logical (arena) space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
