package broadcast

import (
	"errors"
	"testing"

	"parkd/pkg/logger"
	"parkd/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

type recordingSubscriber struct {
	views  []model.StateView
	err    error
	closed bool
}

func (s *recordingSubscriber) Deliver(view model.StateView) error {
	if s.err != nil {
		return s.err
	}
	s.views = append(s.views, view)
	return nil
}

func (s *recordingSubscriber) Close() {
	s.closed = true
}

func TestBroadcast_DeliversToAll(t *testing.T) {
	b := New(testLogger())
	first := &recordingSubscriber{}
	second := &recordingSubscriber{}
	b.Subscribe(first)
	b.Subscribe(second)

	b.Broadcast(model.StateView{Occupied: 2, Total: 4})

	if len(first.views) != 1 || len(second.views) != 1 {
		t.Fatalf("expected one delivery each, got %d and %d", len(first.views), len(second.views))
	}
	if first.views[0].Occupied != 2 {
		t.Errorf("unexpected view delivered: %+v", first.views[0])
	}
}

func TestBroadcast_DropsFailingSubscriber(t *testing.T) {
	b := New(testLogger())
	healthy := &recordingSubscriber{}
	failing := &recordingSubscriber{err: errors.New("broken pipe")}
	b.Subscribe(healthy)
	b.Subscribe(failing)

	b.Broadcast(model.StateView{})

	if b.Len() != 1 {
		t.Errorf("expected failing subscriber removed, %d remain", b.Len())
	}
	if !failing.closed {
		t.Error("expected failing subscriber to be closed")
	}
	if len(healthy.views) != 1 {
		t.Errorf("healthy subscriber must still receive the view, got %d", len(healthy.views))
	}

	// Later broadcasts no longer reach the dropped subscriber
	b.Broadcast(model.StateView{})
	if len(healthy.views) != 2 {
		t.Errorf("expected 2 deliveries to healthy subscriber, got %d", len(healthy.views))
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New(testLogger())
	sub := &recordingSubscriber{}
	handle := b.Subscribe(sub)

	b.Unsubscribe(handle)

	if b.Len() != 0 {
		t.Errorf("expected empty subscriber set, got %d", b.Len())
	}
	if !sub.closed {
		t.Error("expected subscriber closed on unsubscribe")
	}

	// Unknown handles are ignored
	b.Unsubscribe("no-such-handle")
}

func TestChannelSubscriber_Deliver(t *testing.T) {
	sub := NewChannelSubscriber(2)

	if err := sub.Deliver(model.StateView{Occupied: 1}); err != nil {
		t.Fatalf("unexpected delivery error: %v", err)
	}

	select {
	case view := <-sub.Updates():
		if view.Occupied != 1 {
			t.Errorf("unexpected view: %+v", view)
		}
	default:
		t.Fatal("expected a buffered view")
	}
}

func TestChannelSubscriber_FullBuffer(t *testing.T) {
	sub := NewChannelSubscriber(1)

	if err := sub.Deliver(model.StateView{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sub.Deliver(model.StateView{}); !errors.Is(err, ErrSubscriberFull) {
		t.Errorf("expected ErrSubscriberFull, got %v", err)
	}
}

func TestChannelSubscriber_Close(t *testing.T) {
	sub := NewChannelSubscriber(1)
	sub.Close()
	sub.Close() // idempotent

	if err := sub.Deliver(model.StateView{}); !errors.Is(err, ErrSubscriberClosed) {
		t.Errorf("expected ErrSubscriberClosed, got %v", err)
	}

	if _, open := <-sub.Updates(); open {
		t.Error("expected Updates channel closed")
	}
}
