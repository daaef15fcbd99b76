// Package pixel adapts a pixelgl window into the chip8.Renderer and
// chip8.KeyboardSource interfaces the frame loop consumes.
package pixel

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/samthom/chip8-emu/internal/chip8"
)

// keyMap maps a host pixelgl button to the guest hex key it represents,
// per the standard CHIP-8 keypad layout:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keyMap = map[pixelgl.Button]byte{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Window embeds a pixelgl window and implements chip8.Renderer and
// chip8.KeyboardSource over it.
type Window struct {
	*pixelgl.Window
	imDraw *imdraw.IMDraw
}

// NewWindow creates a pixelgl window sized from cfg's window dimensions and
// scale factor.
func NewWindow(cfg chip8.Config) (*Window, error) {
	w := float64(cfg.WindowWidth * cfg.ScaleFactor)
	h := float64(cfg.WindowHeight * cfg.ScaleFactor)

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  "chip8-emu",
		Bounds: pixel.R(0, 0, w, h),
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("pixel: creating window: %w", err)
	}

	// paint one black frame before the first guest frame is ready, so the
	// window never flashes the GL default gray
	win.Clear(colornames.Black)
	win.Update()

	return &Window{Window: win, imDraw: imdraw.New(nil)}, nil
}

func rgb(c chip8.Color) pixel.RGBA {
	return pixel.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// Clear implements chip8.Renderer.
func (w *Window) Clear(bg chip8.Color) {
	w.Window.Clear(rgb(bg))
}

// DrawPixelGrid implements chip8.Renderer: it draws one filled rectangle per
// lit guest pixel, scaled by scale, and, when outline is set, a
// background-colored outline around each lit cell; unlit cells are not drawn. Guest row 0 is the top of the screen, but pixelgl's Y axis
// increases upward, so rows are flipped when drawn.
func (w *Window) DrawPixelGrid(fb [64 * 32]bool, fg, bg chip8.Color, scale int, outline bool) {
	w.imDraw.Clear()
	w.imDraw.Color = rgb(fg)

	s := float64(scale)
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if !fb[y*64+x] {
				continue
			}
			flippedY := 31 - y
			x0, y0 := float64(x)*s, float64(flippedY)*s
			w.imDraw.Push(pixel.V(x0, y0))
			w.imDraw.Push(pixel.V(x0+s, y0+s))
			w.imDraw.Rectangle(0)

			if outline {
				w.imDraw.Color = rgb(bg)
				w.imDraw.Push(pixel.V(x0, y0))
				w.imDraw.Push(pixel.V(x0+s, y0+s))
				w.imDraw.Rectangle(1)
				w.imDraw.Color = rgb(fg)
			}
		}
	}

	w.imDraw.Draw(w.Window)
}

// Present implements chip8.Renderer. Presenting also drives pixelgl's event
// pump, so PollEvents always reflects the previous frame's input.
func (w *Window) Present() {
	w.Window.Update()
}

// PollEvents implements chip8.KeyboardSource.
func (w *Window) PollEvents() []chip8.InputEvent {
	var events []chip8.InputEvent

	if w.Window.Closed() || w.Window.JustPressed(pixelgl.KeyEscape) {
		events = append(events, chip8.InputEvent{Kind: chip8.QuitEvent})
	}
	if w.Window.JustPressed(pixelgl.KeySpace) {
		events = append(events, chip8.InputEvent{Kind: chip8.TogglePauseEvent})
	}

	for btn, key := range keyMap {
		switch {
		case w.Window.JustPressed(btn):
			events = append(events, chip8.InputEvent{Kind: chip8.KeyDown, Key: key})
		case w.Window.JustReleased(btn):
			events = append(events, chip8.InputEvent{Kind: chip8.KeyUp, Key: key})
		}
	}

	return events
}
