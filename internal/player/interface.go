// internal/player/interface.go
package player

import (
	"time"

	"github.com/driftfm/drift/internal/tracks"
)

// Interface defines the engine contract for dependency injection and
// testing. Mutating methods are called only by the control loop; readers
// (UI, progress broadcaster, MPRIS) use the query methods.
type Interface interface {
	Enqueue(t tracks.Ready) error
	Pause()
	Resume()
	Toggle()
	IsPaused() bool
	SetVolume(level float64)
	Volume() float64
	Position() time.Duration
	Duration() time.Duration
	// Finished yields a signal when the current track has played to
	// its end.
	Finished() <-chan struct{}
	Close()
}

// Verify Engine implements Interface at compile time.
var _ Interface = (*Engine)(nil)
