package session

import (
	"context"
	"time"
)

// Run executes the control loop until Quit or context cancellation. It
// starts the progress broadcaster and stops it on return.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(s.done)
	defer s.events.close()

	go s.broadcastProgress(ctx)

	// Initial paint for observers that subscribed before the loop started.
	s.events.emit(EventRedraw)

	// armed gates natural end-of-track advances: an exhaustion signal
	// only counts after a NewSong confirmed the track really started.
	// Only this goroutine touches it.
	armed := false

	for {
		msg, ok := s.nextInput(ctx, armed)
		if !ok {
			return nil
		}

		switch msg.Kind {
		case MsgInit, MsgNext, MsgTryAgain:
			s.bookmarked.Store(false)
			armed = false
			if msg.Kind == MsgNext && !s.now.Exists() {
				continue
			}
			s.events.emit(EventTrackChanged)
			go s.advance(ctx)

		case MsgPlay:
			s.engine.Resume()
			s.events.emit(EventPlaybackStateChanged)

		case MsgPause:
			s.engine.Pause()
			s.events.emit(EventPlaybackStateChanged)

		case MsgPlayPause:
			s.engine.Toggle()
			s.events.emit(EventPlaybackStateChanged)

		case MsgChangeVolume:
			s.engine.SetVolume(s.engine.Volume() + msg.Delta)
			if s.volumes != nil {
				s.volumes.SaveVolume(s.engine.Volume())
			}
			s.events.emit(EventVolumeChanged)

		case MsgNewSong:
			armed = true
			s.events.emit(EventTrackChanged)

		case MsgBookmark:
			s.bookmark(ctx)

		case MsgQuit:
			return nil
		}
	}
}

// nextInput waits for the next control message or, when armed, an
// end-of-track signal. Explicit messages win over a simultaneous
// exhaustion signal so a user skip racing a natural track end cannot
// double-advance.
func (s *Session) nextInput(ctx context.Context, armed bool) (Message, bool) {
	select {
	case msg := <-s.msgs:
		return msg, true
	default:
	}

	if armed {
		select {
		case msg := <-s.msgs:
			return msg, true
		case <-s.engine.Finished():
			return s.resolveExhaustion(), true
		case <-ctx.Done():
			return Message{}, false
		}
	}

	select {
	case msg := <-s.msgs:
		return msg, true
	case <-ctx.Done():
		return Message{}, false
	}
}

// resolveExhaustion turns a consumed end-of-track signal into an
// advance, unless a command landed in the same instant. The select above
// picks a ready case at random, so the message channel is re-checked
// here: a racing advance-class command subsumes the signal, any other
// command is served first with the advance re-queued behind it.
func (s *Session) resolveExhaustion() Message {
	select {
	case msg := <-s.msgs:
		switch msg.Kind {
		case MsgInit, MsgNext, MsgTryAgain, MsgQuit:
			return msg
		default:
			s.Send(Message{Kind: MsgNext})
			return msg
		}
	default:
		return Message{Kind: MsgNext}
	}
}

// advance takes ownership of the next buffered track, hands its audio to
// the engine, installs its metadata as now-playing, and reports back with
// NewSong. Runs off the loop goroutine so the loop stays responsive while
// the queue is empty.
func (s *Session) advance(ctx context.Context) {
	ready, err := s.queue.Pop(ctx)
	if err != nil {
		return
	}

	if err := s.engine.Enqueue(ready); err != nil {
		s.log.WithError(err).WithField("track", ready.Track.DisplayName).
			Warn("failed to start track, trying the next one")
		if !sleepCtx(ctx, s.opts.RetryDelay) {
			return
		}
		s.Send(Message{Kind: MsgTryAgain})
		return
	}

	track := ready.Track
	track.Duration = s.engine.Duration()
	s.now.Store(&track)

	s.Send(Message{Kind: MsgNewSong})
}

// bookmark toggles the bookmark on the current track. A missing current
// track or an unavailable store is a no-op producing no event.
func (s *Session) bookmark(ctx context.Context) {
	current := s.now.Load()
	if current == nil || s.bookmarks == nil {
		return
	}

	displayName := ""
	if current.Custom {
		displayName = current.DisplayName
	}

	bookmarked, err := s.bookmarks.Bookmark(ctx, current.Origin, displayName)
	if err != nil {
		s.log.WithError(err).WithField("origin", current.Origin).
			Error("bookmark persistence failed")
		return
	}
	s.bookmarked.Store(bookmarked)
	s.events.emit(EventBookmarkChanged)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
