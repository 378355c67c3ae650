package session

import (
	"context"
	"fmt"
	"time"
)

// broadcastProgress turns the high-frequency timer into a low-frequency
// event stream: each tick recomputes the rendered position and emits
// ProgressUpdate only when that rendering actually changed, so observers
// never redraw for an identical frame.
func (s *Session) broadcastProgress(ctx context.Context) {
	ticker := time.NewTicker(s.opts.ProgressInterval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}

		if !s.now.Exists() || s.engine.IsPaused() {
			continue
		}

		rendered := renderPosition(s.engine.Position(), s.engine.Duration())
		if rendered == last {
			continue
		}
		last = rendered
		s.events.emit(EventProgressUpdate)
	}
}

// renderPosition formats playback progress at the granularity observers
// care about (whole seconds).
func renderPosition(position, duration time.Duration) string {
	return fmt.Sprintf("%s/%s", FormatDuration(position), FormatDuration(duration))
}

// FormatDuration renders a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
