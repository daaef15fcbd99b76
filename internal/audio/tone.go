// Package audio adapts faiface/beep into the chip8.AudioSink interface: a
// continuously generated square wave that the timer controller pauses and
// unpauses on the sound counter's edge, rather than the teacher's one-shot
// mp3 sample triggered per beep.
package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/samthom/chip8-emu/internal/chip8"
)

// bufferSizeDivisor sizes the speaker's mixing buffer to a tenth of a second,
// matching the teacher's buffer in ManageAudio.
const bufferSizeDivisor = 10

// squareWave is a beep.Streamer generating a continuous square wave at freq
// Hz and the given amplitude, sampled at sr.
type squareWave struct {
	sr    beep.SampleRate
	freq  float64
	amp   float64
	phase float64
}

func (s *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	step := s.freq / float64(s.sr)
	for i := range samples {
		val := s.amp
		if s.phase >= 0.5 {
			val = -s.amp
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += step
		if s.phase >= 1 {
			s.phase -= 1
		}
	}
	return len(samples), true
}

func (s *squareWave) Err() error {
	return nil
}

// Tone is a chip8.AudioSink backed by a beep.Ctrl wrapping a square-wave
// streamer. Pause/Unpause flip the Paused field under speaker.Lock, which
// beep's mixer goroutine reads on its own callback thread, matching the
// "pure configuration plus a non-blocking pause toggle" contract the core
// requires of the audio sink.
type Tone struct {
	ctrl *beep.Ctrl
}

// New initializes the speaker at cfg's sample rate and starts playing a
// square wave at cfg's frequency and volume, beginning paused (silent).
func New(cfg chip8.Config) (*Tone, error) {
	sr := beep.SampleRate(cfg.AudioSampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/bufferSizeDivisor)); err != nil {
		return nil, err
	}

	amp := math.Min(1, float64(cfg.Volume)/10000.0)
	wave := &squareWave{sr: sr, freq: cfg.SquareWaveFreq, amp: amp}
	ctrl := &beep.Ctrl{Streamer: wave, Paused: true}

	speaker.Play(ctrl)

	return &Tone{ctrl: ctrl}, nil
}

// Pause implements chip8.AudioSink. Idempotent: pausing an already-paused
// tone is a no-op write.
func (t *Tone) Pause() {
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

// Unpause implements chip8.AudioSink.
func (t *Tone) Unpause() {
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
}
