package chip8

import "time"

// frameBudget is the nominal per-frame wall-clock budget at 60 frames per
// second.
const frameBudget = time.Second / 60

// Renderer is the host rendering surface the frame loop presents to once
// per frame. The core never imports a concrete windowing package; it only
// depends on this interface.
type Renderer interface {
	Clear(bg Color)
	DrawPixelGrid(fb [displayWidth * displayHigh]bool, fg, bg Color, scale int, outline bool)
	Present()
}

// InputKind tags one drained host input event.
type InputKind int

const (
	KeyDown InputKind = iota
	KeyUp
	TogglePauseEvent
	QuitEvent
)

// InputEvent is one host input event drained at the start of a frame.
type InputEvent struct {
	Kind InputKind
	Key  byte // valid for KeyDown/KeyUp, guest key 0x0-0xF
}

// KeyboardSource is the host input collaborator. PollEvents must return
// immediately with whatever events are pending; it never blocks.
type KeyboardSource interface {
	PollEvents() []InputEvent
}

// Clock is the host wall-clock/delay collaborator.
type Clock interface {
	NowNanos() int64
	Sleep(d time.Duration)
}

// Run is the top-level frame loop: it drains host input, runs a batch of
// guest cycles, ticks the counters, presents a frame, and paces itself to
// ~60 Hz, until the machine transitions to Quit or a guest cycle returns a
// fatal error.
func (m *Machine) Run(cfg Config, r Renderer, kb KeyboardSource, audio AudioSink, clk Clock) error {
	cyclesPerFrame := cfg.CyclesPerFrame()

	for {
		frameStart := clk.NowNanos()

		for _, ev := range kb.PollEvents() {
			switch ev.Kind {
			case KeyDown:
				m.PressKey(ev.Key)
			case KeyUp:
				m.ReleaseKey(ev.Key)
			case TogglePauseEvent:
				m.TogglePause()
			case QuitEvent:
				m.SetQuit()
			}
		}

		switch m.state {
		case Paused:
			// skip guest cycles, still tick timers and present
		case Quit:
			return nil
		default:
			for i := 0; i < cyclesPerFrame; i++ {
				if err := m.Step(); err != nil {
					return err
				}
			}
		}

		m.TickSixtyHz(audio)

		r.Clear(cfg.BgColor)
		r.DrawPixelGrid(m.fb, cfg.FgColor, cfg.BgColor, cfg.ScaleFactor, cfg.PixelOutline)
		r.Present()

		elapsed := time.Duration(clk.NowNanos() - frameStart)
		if remaining := frameBudget - elapsed; remaining > 0 {
			clk.Sleep(remaining)
		}
	}
}
