package session

import "sync"

const eventBufferSize = 16

// Subscription delivers session events to one observer.
type Subscription struct {
	Events <-chan Event
	Done   <-chan struct{}

	eventCh chan Event
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		eventCh: make(chan Event, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.Events = s.eventCh
	s.Done = s.doneCh
	return s
}

// send delivers an event without blocking; the event is dropped when the
// subscriber's buffer is full.
func (s *Subscription) send(e Event) {
	select {
	case s.eventCh <- e:
	default:
	}
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// broadcaster fans events out to all subscriptions.
type broadcaster struct {
	mu     sync.RWMutex
	subs   []*Subscription
	closed bool
}

// subscribe registers a new observer. Returns a closed-out subscription
// when the broadcaster has already shut down.
func (b *broadcaster) subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := newSubscription()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

func (b *broadcaster) emit(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		sub.send(e)
	}
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.close()
	}
	b.subs = nil
}
