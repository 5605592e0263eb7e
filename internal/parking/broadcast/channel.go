package broadcast

import (
	"errors"
	"sync"

	"parkd/pkg/model"
)

// ErrSubscriberFull is returned when a channel subscriber cannot keep
// up with the snapshot rate.
var ErrSubscriberFull = errors.New("subscriber channel full")

// ErrSubscriberClosed is returned for deliveries after Close.
var ErrSubscriberClosed = errors.New("subscriber closed")

// ChannelSubscriber bridges broadcasts onto a Go channel, used by the
// server-sent-events endpoint. Delivery never blocks: when the buffer
// is full the subscriber is considered stalled and is dropped by the
// broadcaster.
type ChannelSubscriber struct {
	mu     sync.Mutex
	ch     chan model.StateView
	closed bool
}

func NewChannelSubscriber(buffer int) *ChannelSubscriber {
	if buffer <= 0 {
		buffer = 8
	}
	return &ChannelSubscriber{ch: make(chan model.StateView, buffer)}
}

// Updates exposes the receive side of the subscription. The channel is
// closed when the subscriber is removed.
func (s *ChannelSubscriber) Updates() <-chan model.StateView {
	return s.ch
}

func (s *ChannelSubscriber) Deliver(view model.StateView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSubscriberClosed
	}
	select {
	case s.ch <- view:
		return nil
	default:
		return ErrSubscriberFull
	}
}

func (s *ChannelSubscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
