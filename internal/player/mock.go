// internal/player/mock.go
package player

import (
	"sync"
	"time"

	"github.com/driftfm/drift/internal/tracks"
)

// Mock is a test double for Engine.
type Mock struct {
	mu sync.Mutex

	paused      bool
	volumeLevel float64
	position    time.Duration
	duration    time.Duration
	enqueued    []tracks.Track
	enqueueErr  error
	finishedCh  chan struct{}
	closed      bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		volumeLevel: 1.0,
		finishedCh:  make(chan struct{}, 1),
	}
}

func (m *Mock) Enqueue(t tracks.Ready) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	// Drain any stale finish signal, like the real engine.
	select {
	case <-m.finishedCh:
	default:
	}
	m.enqueued = append(m.enqueued, t.Track)
	m.position = 0
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

func (m *Mock) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = !m.paused
}

func (m *Mock) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeLevel = level
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volumeLevel
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Finished() <-chan struct{} {
	return m.finishedCh
}

func (m *Mock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Test helpers

func (m *Mock) SetEnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueueErr = err
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) Enqueued() []tracks.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tracks.Track, len(m.enqueued))
	copy(out, m.enqueued)
	return out
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SimulateFinished simulates the current track playing to its end.
func (m *Mock) SimulateFinished() {
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
