package session

import (
	"sync/atomic"

	"github.com/driftfm/drift/internal/tracks"
)

// nowPlaying is the single shared reference to the current track's
// metadata. The control loop swaps it; any number of readers load it
// without locking. A reader always sees a complete value, either the old
// track or the new one.
type nowPlaying struct {
	ptr atomic.Pointer[tracks.Track]
}

// Load returns the current track metadata, or nil when nothing is
// playing yet.
func (n *nowPlaying) Load() *tracks.Track {
	return n.ptr.Load()
}

// Exists reports whether a current track is set.
func (n *nowPlaying) Exists() bool {
	return n.ptr.Load() != nil
}

// Store atomically replaces the current track metadata.
func (n *nowPlaying) Store(t *tracks.Track) {
	n.ptr.Store(t)
}
