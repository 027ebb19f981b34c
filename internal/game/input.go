package game

import (
	"github.com/tomz197/byteblaster/internal/object"
	"github.com/tomz197/byteblaster/internal/physics"
)

// Input is everything a front-end reports for one frame.
// Movement and Fire are held states; the remaining flags are one-shot events.
type Input struct {
	Up, Down, Left, Right bool

	Aim    physics.Vec // Pointer position in arena coordinates
	HasAim bool        // Aim carries a fresh pointer position
	Fire   bool        // Primary fire held

	Confirm bool // Start the game from the title screen
	Pause   bool // Toggle pause
	Restart bool // Back to the title screen after game over
	Dash    bool
	Quit    bool
	Click   bool // Primary button pressed this frame, at Aim
}

// Movement extracts the held movement keys.
func (in Input) Movement() object.Movement {
	return object.Movement{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right}
}
