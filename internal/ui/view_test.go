package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/driftfm/drift/internal/config"
	"github.com/driftfm/drift/internal/fetch"
	"github.com/driftfm/drift/internal/player"
	"github.com/driftfm/drift/internal/session"
	"github.com/driftfm/drift/internal/tracks"
)

func testModel() Model {
	s := session.New(player.NewMock(), fetch.NewQueue(1), nil, nil, session.Options{})
	return New(s, config.UIConfig{Width: 40})
}

func TestStatusLine_States(t *testing.T) {
	if got := statusLine(session.Info{State: session.StateLoading}, 40); !strings.Contains(got, "loading") {
		t.Errorf("loading line = %q", got)
	}

	track := &tracks.Track{DisplayName: "Rainy Evening"}
	got := statusLine(session.Info{State: session.StatePlaying, Track: track}, 40)
	if !strings.Contains(got, "▶") || !strings.Contains(got, "Rainy Evening") {
		t.Errorf("playing line = %q", got)
	}

	got = statusLine(session.Info{State: session.StatePaused, Track: track}, 40)
	if !strings.Contains(got, "⏸") {
		t.Errorf("paused line = %q", got)
	}
}

func TestStatusLine_TruncatesLongNames(t *testing.T) {
	track := &tracks.Track{DisplayName: strings.Repeat("Very Long Name ", 10)}
	got := statusLine(session.Info{State: session.StatePlaying, Track: track}, 20)
	if !strings.Contains(got, "…") {
		t.Errorf("long name not truncated: %q", got)
	}
}

func TestStatusLine_BookmarkMarker(t *testing.T) {
	track := &tracks.Track{DisplayName: "Night Bus"}
	got := statusLine(session.Info{State: session.StatePlaying, Track: track, Bookmarked: true}, 40)
	if !strings.Contains(got, "♥") {
		t.Errorf("bookmarked line missing marker: %q", got)
	}
}

func TestProgressBar_FillsProportionally(t *testing.T) {
	info := session.Info{
		Position: 30 * time.Second,
		Duration: 60 * time.Second,
	}
	got := progressBar(info, 40)
	if !strings.Contains(got, "0:30/1:00") {
		t.Errorf("times missing: %q", got)
	}

	full := strings.Count(got, "█")
	empty := strings.Count(got, "░")
	if full == 0 || empty == 0 {
		t.Fatalf("bar not partially filled: %q", got)
	}
	if diff := full - empty; diff < -1 || diff > 1 {
		t.Errorf("half-way bar unbalanced (%d filled, %d empty): %q", full, empty, got)
	}
}

func TestProgressBar_ZeroDuration(t *testing.T) {
	got := progressBar(session.Info{}, 40)
	if strings.Count(got, "█") != 0 {
		t.Errorf("empty track should render an empty bar: %q", got)
	}
}

// The volume bar stays visible until its deadline passes, independent
// of any event flow, so it expires even while playback is paused.
func TestVolumeFlash_DeadlineControlsView(t *testing.T) {
	m := testModel()

	m.volumeFlashUntil = time.Now().Add(time.Minute)
	if got := m.View(); !strings.Contains(got, "vol") {
		t.Errorf("active flash should render the volume bar: %q", got)
	}

	m.volumeFlashUntil = time.Now().Add(-time.Minute)
	if got := m.View(); strings.Contains(got, "vol") {
		t.Errorf("expired flash should render the progress bar: %q", got)
	}
}

func TestVolumeFlash_SetOnVolumeEvent(t *testing.T) {
	m := testModel()

	updated, cmd := m.Update(eventMsg{event: session.EventVolumeChanged})
	got := updated.(Model)
	if !got.volumeFlashUntil.After(time.Now()) {
		t.Error("volume event should arm the flash deadline")
	}
	if cmd == nil {
		t.Error("volume event should schedule an expiry repaint")
	}

	updated, _ = got.Update(eventMsg{event: session.EventTrackChanged})
	if until := updated.(Model).volumeFlashUntil; !until.IsZero() {
		t.Errorf("track change should clear the flash, got %v", until)
	}
}

func TestVolumeBar_Bounds(t *testing.T) {
	got := volumeBar(1.0, 40)
	if !strings.Contains(got, "100%") {
		t.Errorf("full volume label missing: %q", got)
	}
	if strings.Count(got, "░") != 0 {
		t.Errorf("full volume should fill the bar: %q", got)
	}

	got = volumeBar(0, 40)
	if strings.Count(got, "█") != 0 {
		t.Errorf("zero volume should empty the bar: %q", got)
	}
}
