package chip8

// Color is an RGBA8888 color, used for the framebuffer's foreground and
// background colors.
type Color struct {
	R, G, B, A uint8
}

// Config carries every recognized configuration option. It is populated
// once at startup (by the CLI, see cmd/run.go) and is immutable once the
// frame loop begins.
type Config struct {
	WindowWidth  int
	WindowHeight int
	FgColor      Color
	BgColor      Color
	ScaleFactor  int
	PixelOutline bool

	InstsPerSecond int

	SquareWaveFreq  float64
	AudioSampleRate int
	Volume          int
}

// DefaultConfig returns the documented defaults from spec.md §6.
func DefaultConfig() Config {
	return Config{
		WindowWidth:     displayWidth,
		WindowHeight:    displayHigh,
		FgColor:         Color{R: 255, G: 255, B: 255, A: 255},
		BgColor:         Color{R: 0, G: 0, B: 0, A: 255},
		ScaleFactor:     20,
		PixelOutline:    true,
		InstsPerSecond:  700,
		SquareWaveFreq:  440,
		AudioSampleRate: 44100,
		Volume:          3000,
	}
}

// CyclesPerFrame returns ceil(InstsPerSecond / 60), the number of guest
// cycles the frame loop runs each frame.
func (c Config) CyclesPerFrame() int {
	return (c.InstsPerSecond + 59) / 60
}
