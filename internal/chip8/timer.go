package chip8

// AudioSink is the host audio collaborator the timer controller drives: a
// square-wave tone generator that can be paused and unpaused. Implementations
// must make Pause/Unpause safe to call every tick regardless of current
// state.
type AudioSink interface {
	Pause()
	Unpause()
}

// TickSixtyHz advances both down-counters by one 60 Hz tick and toggles the
// audio sink on the sound edge: unpaused while the sound counter is
// non-zero, paused otherwise. Safe to call once per frame unconditionally.
func (m *Machine) TickSixtyHz(sink AudioSink) {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
		if sink != nil {
			sink.Unpause()
		}
	} else if sink != nil {
		sink.Pause()
	}
}
