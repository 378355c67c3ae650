package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/driftfm/drift/internal/fetch"
	"github.com/driftfm/drift/internal/player"
	"github.com/driftfm/drift/internal/tracks"
)

// BookmarkStore persists bookmark toggles. Bookmark returns the new
// bookmark state for the origin.
type BookmarkStore interface {
	Bookmark(ctx context.Context, origin, displayName string) (bool, error)
}

// VolumeStore persists the volume level across runs.
type VolumeStore interface {
	SaveVolume(level float64)
}

// State is the derived playback session state.
type State int

const (
	// StateLoading means no current track is installed yet.
	StateLoading State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Info is a point-in-time snapshot of playback for observers.
type Info struct {
	State      State
	Volume     float64
	Position   time.Duration
	Duration   time.Duration
	Bookmarked bool
	Track      *tracks.Track
}

// Options tunes the session.
type Options struct {
	// ProgressInterval is the broadcaster tick. Defaults to 100ms.
	ProgressInterval time.Duration
	// RetryDelay is the pause before re-attempting a failed advance.
	RetryDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 100 * time.Millisecond
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 3 * time.Second
	}
	return o
}

// Session is the playback orchestrator. Only its control loop mutates
// engine playback state; everything else observes through snapshots and
// event subscriptions.
type Session struct {
	engine    player.Interface
	queue     *fetch.Queue
	bookmarks BookmarkStore
	volumes   VolumeStore
	opts      Options
	log       *logrus.Entry

	msgs chan Message
	done chan struct{}

	now        nowPlaying
	bookmarked atomic.Bool
	events     broadcaster
}

// New creates a session over its collaborators. Either store may be nil,
// which disables the corresponding persistence.
func New(engine player.Interface, queue *fetch.Queue, bookmarks BookmarkStore, volumes VolumeStore, opts Options) *Session {
	return &Session{
		engine:    engine,
		queue:     queue,
		bookmarks: bookmarks,
		volumes:   volumes,
		opts:      opts.withDefaults(),
		log:       logrus.WithField("component", "session"),
		msgs:      make(chan Message, 64),
		done:      make(chan struct{}),
	}
}

// Send delivers a control message to the loop. Messages from a single
// caller are processed in send order. Send returns without delivering
// once the loop has stopped.
func (s *Session) Send(msg Message) {
	select {
	case s.msgs <- msg:
	case <-s.done:
	}
}

// Subscribe registers an event observer.
func (s *Session) Subscribe() *Subscription {
	return s.events.subscribe()
}

// NowPlaying returns the current track metadata, nil while loading.
func (s *Session) NowPlaying() *tracks.Track {
	return s.now.Load()
}

// Bookmarked reports whether the current track is bookmarked.
func (s *Session) Bookmarked() bool {
	return s.bookmarked.Load()
}

// Snapshot captures the playback state for UI rendering.
func (s *Session) Snapshot() Info {
	info := Info{
		Volume:     s.engine.Volume(),
		Bookmarked: s.bookmarked.Load(),
		Track:      s.now.Load(),
	}
	switch {
	case info.Track == nil:
		info.State = StateLoading
	case s.engine.IsPaused():
		info.State = StatePaused
	default:
		info.State = StatePlaying
	}
	if info.Track != nil {
		info.Position = s.engine.Position()
		info.Duration = s.engine.Duration()
	}
	return info
}
