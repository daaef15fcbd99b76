package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/samthom/chip8-emu/internal/audio"
	"github.com/samthom/chip8-emu/internal/chip8"
	"github.com/samthom/chip8-emu/internal/clock"
	"github.com/samthom/chip8-emu/internal/logger"
	"github.com/samthom/chip8-emu/internal/pixel"
	"github.com/samthom/chip8-emu/internal/romfile"
)

var runFlags struct {
	windowWidth     int
	windowHeight    int
	fgColor         string
	bgColor         string
	scaleFactor     int
	pixelOutline    bool
	instsPerSecond  int
	squareWaveFreq  float64
	audioSampleRate int
	volume          int
}

// runCmd loads a ROM and runs the chip8-emu virtual machine until the user
// quits or a fatal guest condition aborts it.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run the chip8-emu interpreter against a ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runChip8,
}

func init() {
	d := chip8.DefaultConfig()

	runCmd.Flags().IntVar(&runFlags.windowWidth, "window_width", d.WindowWidth, "framebuffer width in guest pixels")
	runCmd.Flags().IntVar(&runFlags.windowHeight, "window_height", d.WindowHeight, "framebuffer height in guest pixels")
	runCmd.Flags().StringVar(&runFlags.fgColor, "fg_color", "ffffffff", "foreground color, RGBA8888 hex")
	runCmd.Flags().StringVar(&runFlags.bgColor, "bg_color", "000000ff", "background color, RGBA8888 hex")
	runCmd.Flags().IntVar(&runFlags.scaleFactor, "scale_factor", d.ScaleFactor, "host pixels per guest pixel")
	runCmd.Flags().BoolVar(&runFlags.pixelOutline, "pixel_outline", d.PixelOutline, "outline each guest pixel cell")
	runCmd.Flags().IntVar(&runFlags.instsPerSecond, "insts_per_second", d.InstsPerSecond, "guest instructions per second")
	runCmd.Flags().Float64Var(&runFlags.squareWaveFreq, "square_wave_freq", d.SquareWaveFreq, "tone frequency in Hz")
	runCmd.Flags().IntVar(&runFlags.audioSampleRate, "audio_sample_rate", d.AudioSampleRate, "audio sample rate in Hz")
	runCmd.Flags().IntVar(&runFlags.volume, "volume", d.Volume, "tone volume")
}

func runChip8(cmd *cobra.Command, args []string) {
	log := logger.New()
	pathToROM := args[0]

	fail := func(format string, a ...interface{}) {
		log.Logf(format, a...)
		fmt.Println(log.Lines()[len(log.Lines())-1])
		os.Exit(1)
	}

	cfg, err := configFromFlags()
	if err != nil {
		fail("invalid configuration: %v", err)
	}

	rom, err := romfile.Load(pathToROM)
	if err != nil {
		fail("reading ROM: %v", err)
	}

	m := chip8.NewMachine()
	if err := m.LoadROM(rom); err != nil {
		fail("loading ROM: %v", err)
	}
	m.SetTrace(func(pc, op uint16) {
		log.Logf("unknown opcode %#04x at pc=%#04x", op, pc)
	})
	m.SetPauseHooks(
		func() { log.Log("PAUSED") },
		func() { log.Log("RESUME") },
	)

	win, err := pixel.NewWindow(cfg)
	if err != nil {
		fail("creating window: %v", err)
	}

	tone, err := audio.New(cfg)
	if err != nil {
		fail("initializing audio: %v", err)
	}

	if err := m.Run(cfg, win, win, tone, clock.New()); err != nil {
		fail("%v", err)
	}
}

func configFromFlags() (chip8.Config, error) {
	cfg := chip8.DefaultConfig()

	fg, err := parseColor(runFlags.fgColor)
	if err != nil {
		return cfg, fmt.Errorf("fg_color: %w", err)
	}
	bg, err := parseColor(runFlags.bgColor)
	if err != nil {
		return cfg, fmt.Errorf("bg_color: %w", err)
	}

	cfg.WindowWidth = runFlags.windowWidth
	cfg.WindowHeight = runFlags.windowHeight
	cfg.FgColor = fg
	cfg.BgColor = bg
	cfg.ScaleFactor = runFlags.scaleFactor
	cfg.PixelOutline = runFlags.pixelOutline
	cfg.InstsPerSecond = runFlags.instsPerSecond
	cfg.SquareWaveFreq = runFlags.squareWaveFreq
	cfg.AudioSampleRate = runFlags.audioSampleRate
	cfg.Volume = runFlags.volume

	return cfg, nil
}

// parseColor reads an 8-character RGBA8888 hex string, e.g. "ff0000ff".
func parseColor(s string) (chip8.Color, error) {
	if len(s) != 8 {
		return chip8.Color{}, fmt.Errorf("want 8 hex digits (RRGGBBAA), got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return chip8.Color{}, err
	}
	return chip8.Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
