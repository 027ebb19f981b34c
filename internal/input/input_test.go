package input

import (
	"strings"
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestHeldKeys(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "wd")
	in := s.read(now)
	if !in.Up || !in.Right || in.Down || in.Left {
		t.Fatalf("held = up:%v right:%v down:%v left:%v", in.Up, in.Right, in.Down, in.Left)
	}

	in = s.read(now.Add(keyHoldDuration / 2))
	if !in.Up || !in.Right {
		t.Error("keys released before hold duration")
	}

	in = s.read(now.Add(keyHoldDuration))
	if in.Up || in.Right {
		t.Error("keys still held after hold duration")
	}
}

func TestArrowKeys(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[A\x1b[D")
	in := s.read(time.Now())
	if !in.Up || !in.Left {
		t.Errorf("arrows: up=%v left=%v", in.Up, in.Left)
	}
	if in.Quit {
		t.Error("escape sequence treated as escape key")
	}
}

func TestPressesLastOneFrame(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, " pr\r")
	in := s.read(now)
	if !in.Dash || !in.Pause || !in.Restart || !in.Confirm {
		t.Fatalf("presses = %+v", in)
	}

	in = s.read(now)
	if in.Dash || in.Pause || in.Restart || in.Confirm {
		t.Errorf("presses repeated on next frame: %+v", in)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, data := range []string{"q", "Q", "\x03", "\x1b"} {
		s := newStream()
		feed(s, data)
		if in := s.read(time.Now()); !in.Quit {
			t.Errorf("%q did not quit", data)
		}
	}
}

func TestAltPrefixIgnored(t *testing.T) {
	s := newStream()
	feed(s, "\x1bw")
	in := s.read(time.Now())
	if in.Quit {
		t.Error("alt prefix quit")
	}
	if !in.Up {
		t.Error("key after alt prefix lost")
	}
}

func TestMouseSGR(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "\x1b[<35;10;5M")
	in := s.read(now)
	if !in.Mouse.Known || !in.Mouse.Moved || in.Mouse.Col != 10 || in.Mouse.Row != 5 {
		t.Fatalf("motion = %+v", in.Mouse)
	}
	if in.Mouse.Held || in.Mouse.Click {
		t.Errorf("motion without button pressed: %+v", in.Mouse)
	}

	feed(s, "\x1b[<0;12;6M")
	in = s.read(now)
	if !in.Mouse.Click || !in.Mouse.Held || in.Mouse.Col != 12 {
		t.Fatalf("press = %+v", in.Mouse)
	}

	in = s.read(now)
	if in.Mouse.Click || in.Mouse.Moved {
		t.Errorf("click repeated: %+v", in.Mouse)
	}
	if !in.Mouse.Held || in.Mouse.Col != 12 || in.Mouse.Row != 6 {
		t.Errorf("state lost between frames: %+v", in.Mouse)
	}

	feed(s, "\x1b[<32;14;7M")
	in = s.read(now)
	if !in.Mouse.Held || in.Mouse.Col != 14 {
		t.Errorf("drag = %+v", in.Mouse)
	}

	feed(s, "\x1b[<0;14;7m")
	in = s.read(now)
	if in.Mouse.Held {
		t.Errorf("release = %+v", in.Mouse)
	}
}

func TestMouseWheelOnlyMoves(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[<64;3;4M")
	in := s.read(time.Now())
	if in.Mouse.Click || in.Mouse.Held {
		t.Errorf("wheel = %+v", in.Mouse)
	}
	if in.Mouse.Col != 3 || in.Mouse.Row != 4 {
		t.Errorf("wheel position = %d,%d", in.Mouse.Col, in.Mouse.Row)
	}
}

func TestSplitSequenceCarriedOver(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "\x1b[<0;2")
	in := s.read(now)
	if in.Quit || in.Mouse.Known {
		t.Fatalf("partial sequence applied: %+v", in)
	}

	feed(s, "0;9M")
	in = s.read(now)
	if !in.Mouse.Click || in.Mouse.Col != 20 || in.Mouse.Row != 9 {
		t.Errorf("joined sequence = %+v", in.Mouse)
	}
}

func TestMalformedMouseIgnored(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[<0;x;1M\x1b[<1;2M")
	in := s.read(time.Now())
	if in.Mouse.Known {
		t.Errorf("malformed report applied: %+v", in.Mouse)
	}
}

func TestStartStreamCloses(t *testing.T) {
	s := StartStream(strings.NewReader("w"))

	deadline := time.Now().Add(2 * time.Second)
	var sawUp bool
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		sawUp = sawUp || in.Up
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !s.closed {
		t.Fatal("stream did not report closed reader")
	}
	if !sawUp {
		t.Error("byte before EOF lost")
	}
}
