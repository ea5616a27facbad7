package player

import (
	"github.com/gopxl/beep/v2/speaker"
)

// Play starts playback. A source that is not loaded yet is opened from
// the start; a paused stream resumes where it was.
func (e *Element) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.src == "" {
		return ErrNoSource
	}

	if e.ctrl == nil || e.loaded != e.src {
		return e.openLocked()
	}

	if e.state == Paused {
		speaker.Lock()
		e.ctrl.Paused = false
		speaker.Unlock()
		e.state = Playing
	}
	return nil
}

// Pause pauses playback. It is a no-op unless the element is playing.
func (e *Element) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Playing || e.ctrl == nil {
		return nil
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.state = Paused
	return nil
}
