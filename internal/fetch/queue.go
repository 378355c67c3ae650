// Package fetch downloads upcoming tracks in the background and buffers
// them in a bounded queue so playback never waits on the network.
package fetch

import (
	"context"

	"github.com/driftfm/drift/internal/tracks"
)

// Queue is a bounded FIFO of ready-to-play tracks. A full queue blocks
// producers, which is the sole backpressure mechanism keeping the workers
// from fetching more than capacity tracks ahead of playback.
//
// Order is completion order. With a single worker (the default) that is
// identical to candidate-request order.
type Queue struct {
	ch chan tracks.Ready
}

// NewQueue creates a queue with the given capacity (must be positive).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan tracks.Ready, capacity)}
}

// Push enqueues a ready track, blocking while the queue is full.
// Returns ctx.Err() if the context is cancelled while waiting.
func (q *Queue) Push(ctx context.Context, t tracks.Ready) error {
	select {
	case q.ch <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop dequeues the oldest ready track, blocking while the queue is empty.
// Returns ctx.Err() if the context is cancelled while waiting.
func (q *Queue) Pop(ctx context.Context) (tracks.Ready, error) {
	select {
	case t := <-q.ch:
		return t, nil
	case <-ctx.Done():
		return tracks.Ready{}, ctx.Err()
	}
}

// Len returns a snapshot of the number of buffered tracks.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}
