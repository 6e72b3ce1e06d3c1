package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestInMemoryBusPublish(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var calls atomic.Int32
	bus.Subscribe("lead.created", HandlerFunc(func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	}))
	bus.Subscribe("lead.created", HandlerFunc(func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	}))
	bus.Subscribe("lead.status_changed", HandlerFunc(func(ctx context.Context, event Event) error {
		t.Error("handler for unrelated event should not run")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "lead.created"})
	bus.Wait()

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 handler calls, got %d", got)
	}
}

func TestInMemoryBusPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)

	wantErr := errors.New("handler failed")
	bus.Subscribe("doc.verified", HandlerFunc(func(ctx context.Context, event Event) error {
		return wantErr
	}))
	bus.Subscribe("doc.verified", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "doc.verified"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected joined error to contain handler error, got %v", err)
	}
}

func TestInMemoryBusRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(nil)

	bus.Subscribe("doc.needs_review", HandlerFunc(func(ctx context.Context, event Event) error {
		panic("boom")
	}))

	// Must not crash the publisher.
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "doc.needs_review"})

	done := make(chan struct{})
	go func() {
		bus.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus.Wait did not return after panicking handler")
	}
}
