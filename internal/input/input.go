// Package input turns the raw byte stream of a terminal in raw mode into
// per-frame key and mouse state.
package input

import (
	"bufio"
	"io"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last byte.
// It has to span the gap between terminal key repeats.
const keyHoldDuration = 120 * time.Millisecond

// maxPending bounds an unfinished escape sequence carried to the next frame.
const maxPending = 32

// Mouse is the pointer state reported through SGR mouse tracking.
// Col and Row are 1-based terminal cells.
type Mouse struct {
	Col, Row int
	Known    bool // A position has been reported at least once
	Moved    bool // Any mouse event arrived this frame
	Click    bool // Left button went down this frame
	Held     bool // Left button is down
}

// Input represents the current frame's input state.
type Input struct {
	// Held keys.
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool

	// Presses seen this frame.
	Dash    bool
	Pause   bool
	Confirm bool
	Restart bool
	Quit    bool

	Mouse   Mouse
	Closed  bool // The underlying reader is gone
	Pressed []byte
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
	fire  time.Time
	mouse Mouse
}

// Stream delivers input bytes via a channel and keeps key state between
// frames.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte
	closed  bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine ends when r returns an error.
func StartStream(r io.Reader) *Stream {
	s := newStream()
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking
// and returns the input state for this frame.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Closed: s.closed, Pressed: buf}
	s.state.mouse.Moved = false
	s.state.mouse.Click = false

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			s.applyByte(&in, b, now)
			continue
		}

		switch {
		case i+1 == len(buf):
			// Lone escape key.
			in.Quit = true
		case buf[i+1] != '[':
			// Alt+key: ignore the prefix and read the key normally.
		default:
			end, ok := csiEnd(buf, i+2)
			if !ok {
				if rest := buf[i:]; len(rest) <= maxPending && !s.closed {
					s.pending = append([]byte(nil), rest...)
				}
				i = len(buf)
				continue
			}
			s.applyCSI(buf[i+2:end], buf[end], now)
			i = end
		}
	}

	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Fire = now.Sub(s.state.fire) < keyHoldDuration
	in.Mouse = s.state.mouse
	return in
}

// csiEnd returns the index of the final byte of a CSI sequence whose
// parameters start at from.
func csiEnd(buf []byte, from int) (int, bool) {
	for j := from; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j, true
		}
	}
	return 0, false
}

func (s *Stream) applyCSI(params []byte, final byte, now time.Time) {
	if len(params) > 0 && params[0] == '<' {
		if final == 'M' || final == 'm' {
			s.applyMouse(params[1:], final == 'M')
		}
		return
	}

	switch final {
	case 'A':
		s.state.up = now
	case 'B':
		s.state.down = now
	case 'C':
		s.state.right = now
	case 'D':
		s.state.left = now
	}
}

// applyMouse handles an SGR report "button;col;row" ending in M (press or
// motion) or m (release).
func (s *Stream) applyMouse(params []byte, press bool) {
	var fields [3]int
	n := 0
	start := 0
	for j := 0; j <= len(params); j++ {
		if j < len(params) && params[j] != ';' {
			continue
		}
		if n == len(fields) {
			return
		}
		v, err := strconv.Atoi(string(params[start:j]))
		if err != nil {
			return
		}
		fields[n] = v
		n++
		start = j + 1
	}
	if n != len(fields) {
		return
	}

	button, col, row := fields[0], fields[1], fields[2]
	m := &s.state.mouse
	m.Col, m.Row = col, row
	m.Known = true
	m.Moved = true

	if button&64 != 0 {
		// Wheel.
		return
	}
	left := button&3 == 0
	motion := button&32 != 0

	switch {
	case !press:
		if left {
			m.Held = false
		}
	case motion:
		m.Held = left
	case left:
		m.Held = true
		m.Click = true
	}
}

// applyByte updates key state for a plain byte.
func (s *Stream) applyByte(in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03:
		in.Quit = true
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case 'w', 'W':
		s.state.up = now
	case 's', 'S':
		s.state.down = now
	case 'f', 'F':
		s.state.fire = now
	case ' ':
		in.Dash = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case '\n', '\r':
		in.Confirm = true
	}
}
