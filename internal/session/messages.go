// Package session orchestrates playback: it owns the control loop that
// consumes commands and end-of-track signals, advances the now-playing
// slot from the prefetch queue, and emits events for observers.
package session

// Kind identifies a control message.
type Kind int

const (
	// MsgInit requests the first track after startup.
	MsgInit Kind = iota
	// MsgNext skips to the next buffered track. No-op when nothing is
	// playing yet.
	MsgNext
	// MsgTryAgain re-attempts an advance that failed to start.
	MsgTryAgain
	// MsgPlay resumes the engine.
	MsgPlay
	// MsgPause pauses the engine.
	MsgPause
	// MsgPlayPause toggles the engine pause state.
	MsgPlayPause
	// MsgChangeVolume adjusts volume by Message.Delta, clamped to 0..1.
	MsgChangeVolume
	// MsgNewSong marks that a new track has actually started, arming
	// the next natural end-of-track advance.
	MsgNewSong
	// MsgBookmark toggles a bookmark on the current track.
	MsgBookmark
	// MsgQuit stops the control loop.
	MsgQuit
)

// Message is a control command. Delta is only meaningful for
// MsgChangeVolume.
type Message struct {
	Kind  Kind
	Delta float64
}

// ChangeVolume builds a volume adjustment message.
func ChangeVolume(delta float64) Message {
	return Message{Kind: MsgChangeVolume, Delta: delta}
}

func (k Kind) String() string {
	switch k {
	case MsgInit:
		return "Init"
	case MsgNext:
		return "Next"
	case MsgTryAgain:
		return "TryAgain"
	case MsgPlay:
		return "Play"
	case MsgPause:
		return "Pause"
	case MsgPlayPause:
		return "PlayPause"
	case MsgChangeVolume:
		return "ChangeVolume"
	case MsgNewSong:
		return "NewSong"
	case MsgBookmark:
		return "Bookmark"
	case MsgQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is a notification emitted by the session for observers (UI,
// MPRIS). Delivery is best-effort: a slow observer loses events rather
// than blocking the loop.
type Event int

const (
	EventRedraw Event = iota
	EventVolumeChanged
	EventTrackChanged
	EventPlaybackStateChanged
	EventProgressUpdate
	EventBookmarkChanged
)

func (e Event) String() string {
	switch e {
	case EventRedraw:
		return "Redraw"
	case EventVolumeChanged:
		return "VolumeChanged"
	case EventTrackChanged:
		return "TrackChanged"
	case EventPlaybackStateChanged:
		return "PlaybackStateChanged"
	case EventProgressUpdate:
		return "ProgressUpdate"
	case EventBookmarkChanged:
		return "BookmarkChanged"
	default:
		return "Unknown"
	}
}
