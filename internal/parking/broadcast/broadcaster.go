// Package broadcast fans state snapshots out to live observers.
package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"parkd/pkg/logger"
	"parkd/pkg/model"
)

// Subscriber receives state snapshots. Deliver must not block
// indefinitely; a returned error unsubscribes the subscriber.
type Subscriber interface {
	Deliver(view model.StateView) error
	Close()
}

// Broadcaster maintains the live subscriber set under its own lock,
// decoupled from the coordinator's lock so that slow delivery never
// blocks slot-affecting operations.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]Subscriber
	log         *logger.Logger
}

func New(log *logger.Logger) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]Subscriber),
		log:         log,
	}
}

// Subscribe registers sub and returns its handle.
func (b *Broadcaster) Subscribe(sub Subscriber) string {
	handle := uuid.NewString()
	b.mu.Lock()
	b.subscribers[handle] = sub
	b.mu.Unlock()
	b.log.Debug("Subscriber registered", "handle", handle)
	return handle
}

// Unsubscribe removes and closes the subscriber for handle. Unknown
// handles are ignored.
func (b *Broadcaster) Unsubscribe(handle string) {
	b.mu.Lock()
	sub, ok := b.subscribers[handle]
	if ok {
		delete(b.subscribers, handle)
	}
	b.mu.Unlock()
	if ok {
		sub.Close()
		b.log.Debug("Subscriber removed", "handle", handle)
	}
}

// Broadcast delivers view to every current subscriber. Delivery is
// best-effort: a subscriber whose delivery fails is unsubscribed
// rather than retried, and failures never propagate to the caller.
func (b *Broadcaster) Broadcast(view model.StateView) {
	b.mu.Lock()
	targets := make(map[string]Subscriber, len(b.subscribers))
	for handle, sub := range b.subscribers {
		targets[handle] = sub
	}
	b.mu.Unlock()

	for handle, sub := range targets {
		if err := sub.Deliver(view); err != nil {
			b.log.Warn("Dropping subscriber after failed delivery", "handle", handle, "error", err)
			b.Unsubscribe(handle)
		}
	}
}

// Len returns the current subscriber count.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
