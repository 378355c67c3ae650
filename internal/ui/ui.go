// Package ui renders the player window and forwards key presses as
// control messages. It never mutates playback state itself.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftfm/drift/internal/config"
	"github.com/driftfm/drift/internal/session"
)

// volumeFlashDuration is how long the volume bar stays visible after an
// adjustment.
const volumeFlashDuration = time.Second

// volumeStep is the delta applied per volume key press.
const volumeStep = 0.05

type eventMsg struct {
	event session.Event
}

type sessionDoneMsg struct{}

// flashExpiredMsg triggers a repaint once the volume flash deadline has
// passed, even when no session event arrives (e.g. while paused).
type flashExpiredMsg struct{}

// Model is the bubbletea model for the player window.
type Model struct {
	session *session.Session
	sub     *session.Subscription
	cfg     config.UIConfig
	keys    KeyMap

	// volumeFlashUntil shows the volume bar instead of the progress bar
	// until the deadline passes.
	volumeFlashUntil time.Time
}

// New creates the UI model over a running session.
func New(s *session.Session, cfg config.UIConfig) Model {
	return Model{
		session: s,
		sub:     s.Subscribe(),
		cfg:     cfg,
		keys:    DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next session event.
func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.sub.Events:
			return eventMsg{event: e}
		case <-m.sub.Done:
			return sessionDoneMsg{}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		switch msg.event {
		case session.EventVolumeChanged:
			m.volumeFlashUntil = time.Now().Add(volumeFlashDuration)
			return m, tea.Batch(m.listen(), tea.Tick(volumeFlashDuration, func(time.Time) tea.Msg {
				return flashExpiredMsg{}
			}))
		case session.EventTrackChanged:
			m.volumeFlashUntil = time.Time{}
		case session.EventRedraw, session.EventProgressUpdate,
			session.EventPlaybackStateChanged, session.EventBookmarkChanged:
			// Redraw via the return below.
		}
		return m, m.listen()

	case flashExpiredMsg:
		return m, nil

	case sessionDoneMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.session.Send(session.Message{Kind: session.MsgQuit})
			return m, tea.Quit
		case key.Matches(msg, m.keys.PlayPause):
			m.session.Send(session.Message{Kind: session.MsgPlayPause})
		case key.Matches(msg, m.keys.Skip):
			m.session.Send(session.Message{Kind: session.MsgNext})
		case key.Matches(msg, m.keys.VolumeUp):
			m.session.Send(session.ChangeVolume(volumeStep))
		case key.Matches(msg, m.keys.VolumeDown):
			m.session.Send(session.ChangeVolume(-volumeStep))
		case key.Matches(msg, m.keys.Bookmark):
			m.session.Send(session.Message{Kind: session.MsgBookmark})
		}
	}
	return m, nil
}
