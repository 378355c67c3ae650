package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Pause pauses playback. The paused state outlives the current track: a
// track enqueued while paused stays paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = true
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Resume resumes paused playback.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = false
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = false
		speaker.Unlock()
	}
}

// Toggle flips between playing and paused.
func (e *Engine) Toggle() {
	if e.IsPaused() {
		e.Resume()
	} else {
		e.Pause()
	}
}

// IsPaused reports the pause state.
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Position returns the playback position within the current track.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	// Read without the speaker lock - may be slightly stale but avoids
	// contending with the audio callback.
	return e.format.SampleRate.D(e.streamer.Position())
}

// Duration returns the length of the current track, zero when idle.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}
