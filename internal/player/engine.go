// Package player wraps beep's speaker in an engine that plays tracks from
// in-memory audio fetched off the network.
package player

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"

	"github.com/driftfm/drift/internal/tracks"
)

// speakerSampleRate is the fixed output rate; tracks with a different
// rate are resampled.
const speakerSampleRate = beep.SampleRate(44100)

// Engine owns the audio sink. Construction fails when no output device is
// available, which is fatal at startup.
type Engine struct {
	mu sync.Mutex

	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	duration    time.Duration
	paused      bool
	volumeLevel float64

	finishedCh chan struct{}
}

// New initializes the audio device. startPaused makes the first enqueued
// track begin in the paused state.
func New(startPaused bool) (*Engine, error) {
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init audio device: %w", err)
	}
	return &Engine{
		paused:      startPaused,
		volumeLevel: 1.0,
		finishedCh:  make(chan struct{}, 1),
	}, nil
}

// Enqueue replaces whatever is playing with the given track. Playback
// starts immediately unless the engine is paused.
func (e *Engine) Enqueue(t tracks.Ready) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	// Drain any stale finish signal from the previous track.
	select {
	case <-e.finishedCh:
	default:
	}

	streamer, format, err := decode(t.Data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", t.Track.DisplayName, err)
	}

	e.streamer = streamer
	e.format = format
	e.duration = format.SampleRate.D(streamer.Len())

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	e.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: e.paused}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2, Volume: levelToVolume(e.volumeLevel), Silent: e.volumeLevel <= 0}

	speaker.Play(beep.Seq(e.volume, beep.Callback(func() {
		select {
		case e.finishedCh <- struct{}{}:
		default:
		}
	})))

	return nil
}

// stopLocked clears the sink and releases the current streamer.
// Caller holds e.mu.
func (e *Engine) stopLocked() {
	if e.streamer == nil {
		return
	}
	speaker.Clear()
	e.streamer.Close()
	e.streamer = nil
	e.ctrl = nil
	e.volume = nil
	e.duration = 0
}

// Finished yields a signal each time a track plays to its natural end.
func (e *Engine) Finished() <-chan struct{} {
	return e.finishedCh
}

// Close stops playback and shuts down the audio device.
func (e *Engine) Close() {
	e.mu.Lock()
	e.stopLocked()
	e.mu.Unlock()
	speaker.Close()
}

// decode sniffs the payload format and returns a seekable streamer.
func decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := &nopReadSeekCloser{bytes.NewReader(data)}
	switch sniff(data) {
	case "flac":
		return flac.Decode(rc)
	case "ogg":
		return vorbis.Decode(rc)
	default:
		return mp3.Decode(rc)
	}
}

func sniff(data []byte) string {
	if len(data) >= 4 {
		switch {
		case string(data[:4]) == "fLaC":
			return "flac"
		case string(data[:4]) == "OggS":
			return "ogg"
		}
	}
	return "mp3"
}

// nopReadSeekCloser keeps the seek capability of bytes.Reader while
// satisfying the decoders' ReadCloser requirement.
type nopReadSeekCloser struct {
	*bytes.Reader
}

func (*nopReadSeekCloser) Close() error { return nil }

var _ io.ReadSeekCloser = (*nopReadSeekCloser)(nil)
