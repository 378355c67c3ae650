package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/driftfm/drift/internal/tracks"
)

// mp3Frame is a minimal payload that passes audio sniffing.
var mp3Frame = []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}

// seqSource hands out candidates in a fixed cycle. Safe for concurrent
// calls like the real source.
type seqSource struct {
	mu    sync.Mutex
	paths []string
	next  int
	base  string
}

func (s *seqSource) Next() tracks.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.paths[s.next%len(s.paths)]
	s.next++
	return tracks.Candidate{Path: p, URL: s.base + "/" + p, DisplayName: p}
}

func testOptions() Options {
	return Options{
		Timeout:    time.Second,
		RetryDelay: time.Millisecond,
		Workers:    1,
	}
}

func TestPool_FetchesAndBuffers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(mp3Frame)
	}))
	defer srv.Close()

	src := &seqSource{paths: []string{"a.mp3", "b.mp3"}, base: srv.URL}
	q := NewQueue(2)
	pool := NewPool(src, q, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	got, err := q.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if got.Track.Name != "a.mp3" {
		t.Errorf("first track = %q, want a.mp3", got.Track.Name)
	}
	if len(got.Data) == 0 {
		t.Error("buffered track has no payload")
	}
	if got.Track.Origin != srv.URL+"/a.mp3" {
		t.Errorf("Origin = %q", got.Track.Origin)
	}

	cancel()
	pool.Wait()
}

// TestPool_RetryConvergence checks that a source failing the first k
// attempts still converges on a playable track, without anything beyond
// the worker observing the failures.
func TestPool_RetryConvergence(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) <= 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write(mp3Frame)
	}))
	defer srv.Close()

	src := &seqSource{paths: []string{"c1.mp3", "c2.mp3", "c3.mp3", "c4.mp3"}, base: srv.URL}
	q := NewQueue(1)
	pool := NewPool(src, q, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	got, err := q.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	// Three candidates discarded, the fourth made it through.
	if got.Track.Name != "c4.mp3" {
		t.Errorf("installed track = %q, want c4.mp3", got.Track.Name)
	}

	cancel()
	pool.Wait()
}

func TestPool_RejectsInvalidPayload(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte("<html>not audio</html>"))
			return
		}
		w.Write(mp3Frame)
	}))
	defer srv.Close()

	src := &seqSource{paths: []string{"bad.mp3", "good.mp3"}, base: srv.URL}
	q := NewQueue(1)
	pool := NewPool(src, q, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	got, err := q.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if got.Track.Name != "good.mp3" {
		t.Errorf("installed track = %q, want good.mp3", got.Track.Name)
	}

	cancel()
	pool.Wait()
}

func TestPool_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(mp3Frame)
	}))
	defer srv.Close()

	src := &seqSource{paths: []string{"a.mp3"}, base: srv.URL}
	q := NewQueue(1)
	pool := NewPool(src, q, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	// Let the worker fill the queue and block on the next push.
	if _, err := q.Pop(ctx); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}

func TestLooksLikeAudio(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want bool
	}{
		{"id3", []byte("ID3\x04\x00\x00"), true},
		{"mp3 sync", mp3Frame, true},
		{"flac", []byte("fLaC\x00\x00"), true},
		{"ogg", []byte("OggS\x00\x00"), true},
		{"html", []byte("<html>"), false},
		{"short", []byte{0xFF}, false},
		{"empty", nil, false},
	}
	for _, c := range cases {
		if got := looksLikeAudio(c.data); got != c.want {
			t.Errorf("%s: looksLikeAudio = %v, want %v", c.name, got, c.want)
		}
	}
}
