package broadcast

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the per-subscriber buffer used when a non-positive capacity is given.
const DefaultCapacity = 16

// Broadcaster is a best-effort multicast of values to the subscribers attached at publish time.
// Subscribers never receive values published before they subscribed. Publish never blocks:
// when a subscriber's buffer is full its oldest value is dropped to make room.
type Broadcaster[T any] struct {
	mu          sync.Mutex
	capacity    int
	subscribers map[<-chan T]chan T
	stopped     bool
	dropped     atomic.Uint64
}

func NewBroadcaster[T any](capacity int) *Broadcaster[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Broadcaster[T]{
		capacity:    capacity,
		subscribers: make(map[<-chan T]chan T),
	}
}

// Subscribe attaches a new subscriber. If the broadcaster is already stopped the returned
// channel is closed.
func (broadcaster *Broadcaster[T]) Subscribe() <-chan T {
	ch := make(chan T, broadcaster.capacity)

	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	if broadcaster.stopped {
		close(ch)
		return ch
	}
	broadcaster.subscribers[ch] = ch

	return ch
}

// Unsubscribe detaches and closes the subscriber channel. Unknown or already closed
// channels are ignored.
func (broadcaster *Broadcaster[T]) Unsubscribe(subscriber <-chan T) {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	ch, ok := broadcaster.subscribers[subscriber]
	if !ok {
		return
	}
	delete(broadcaster.subscribers, subscriber)
	close(ch)
}

// Publish offers msg to every current subscriber and returns how many received it without
// a drop. Publishing with no subscribers is a no-op.
func (broadcaster *Broadcaster[T]) Publish(msg T) int {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	if broadcaster.stopped {
		return 0
	}

	delivered := 0
	for _, s := range broadcaster.subscribers {
		select {
		case s <- msg:
			delivered++
			continue
		default:
		}

		// channel is full, drop the oldest message
		select {
		case <-s:
			broadcaster.dropped.Add(1)
		default:
		}
		select {
		case s <- msg:
		default:
			broadcaster.dropped.Add(1)
		}
	}

	return delivered
}

// Stop closes every subscriber channel. Later subscribers get a closed channel.
func (broadcaster *Broadcaster[T]) Stop() {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	if broadcaster.stopped {
		return
	}
	broadcaster.stopped = true
	for key, ch := range broadcaster.subscribers {
		close(ch)
		delete(broadcaster.subscribers, key)
	}
}

// Subscribers returns the number of attached subscribers.
func (broadcaster *Broadcaster[T]) Subscribers() int {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	return len(broadcaster.subscribers)
}

// Dropped returns how many values were discarded because a subscriber lagged.
func (broadcaster *Broadcaster[T]) Dropped() uint64 {
	return broadcaster.dropped.Load()
}
