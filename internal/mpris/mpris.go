//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/driftfm/drift/internal/session"
)

// Adapter exposes the session on D-Bus so media keys and desktop
// applets can control playback.
type Adapter struct {
	session *session.Session
	server  *server.Server
	sub     *session.Subscription
	done    chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(s *session.Session) (*Adapter, error) {
	a := &Adapter{
		session: s,
		done:    make(chan struct{}),
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{session: s}

	a.server = server.NewServer("drift", rootAdapter, playerAdapter)
	a.sub = s.Subscribe()

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Drift", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	session *session.Session
}

func (p *playerAdapter) Next() error {
	p.session.Send(session.Message{Kind: session.MsgNext})
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil // A radio stream has no history to step back into
}

func (p *playerAdapter) Pause() error {
	p.session.Send(session.Message{Kind: session.MsgPause})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.session.Send(session.Message{Kind: session.MsgPlayPause})
	return nil
}

func (p *playerAdapter) Stop() error {
	p.session.Send(session.Message{Kind: session.MsgPause})
	return nil
}

func (p *playerAdapter) Play() error {
	p.session.Send(session.Message{Kind: session.MsgPlay})
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.session.Snapshot().State {
	case session.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case session.StatePaused:
		return types.PlaybackStatusPaused, nil
	case session.StateLoading:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.session.NowPlaying()
	if track == nil {
		return types.Metadata{}, nil
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Origin)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.DisplayName,
		Artist:  []string{"drift radio"},
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.session.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	current := p.session.Snapshot().Volume
	p.session.Send(session.ChangeVolume(v - current))
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.session.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(origin string) string {
	h := fnv.New64a()
	h.Write([]byte(origin))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
