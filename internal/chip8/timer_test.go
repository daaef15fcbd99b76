package chip8

import "testing"

type fakeSink struct {
	pauses, unpauses int
	pausedNow        bool
}

func (s *fakeSink) Pause()   { s.pauses++; s.pausedNow = true }
func (s *fakeSink) Unpause() { s.unpauses++; s.pausedNow = false }

func TestTimerMonotonicity(t *testing.T) {
	cases := []struct{ delay, sound byte }{
		{10, 5}, {1, 1}, {0, 0}, {0, 3}, {3, 0},
	}

	for _, tc := range cases {
		m := NewMachine()
		m.delay, m.sound = tc.delay, tc.sound

		m.TickSixtyHz(&fakeSink{})

		wantDelay := tc.delay
		if wantDelay > 0 {
			wantDelay--
		}
		wantSound := tc.sound
		if wantSound > 0 {
			wantSound--
		}

		if m.delay != wantDelay || m.sound != wantSound {
			t.Errorf("tick(%d,%d) -> (%d,%d), want (%d,%d)",
				tc.delay, tc.sound, m.delay, m.sound, wantDelay, wantSound)
		}
	}
}

func TestTimerAudioEdgeIsIdempotent(t *testing.T) {
	m := NewMachine()
	m.sound = 1
	sink := &fakeSink{}

	m.TickSixtyHz(sink) // sound 1->0, should unpause once
	if sink.unpauses != 1 || sink.pausedNow {
		t.Fatalf("after sound edge: unpauses=%d pausedNow=%v, want 1,false", sink.unpauses, sink.pausedNow)
	}

	m.TickSixtyHz(sink) // sound already 0: should request paused, safely
	m.TickSixtyHz(sink)
	if !sink.pausedNow {
		t.Errorf("sink not paused after sound reached 0")
	}
}
