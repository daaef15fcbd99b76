package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/samthom/chip8-emu/cmd"
)

func main() {
	// pixelgl needs access to the main thread, so the entire CLI runs
	// inside its callback.
	pixelgl.Run(cmd.Execute)
}
