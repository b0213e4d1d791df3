package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishBroadcast(t *testing.T) {
	bus := NewKnowledgeEventBus()
	calledA := false
	calledB := false

	bus.Subscribe(KnowledgeEventApproved, func(ctx context.Context, event KnowledgeEvent) error {
		calledA = true
		return nil
	})
	bus.Subscribe(KnowledgeEventApproved, func(ctx context.Context, event KnowledgeEvent) error {
		calledB = true
		return nil
	})

	if err := bus.Publish(context.Background(), KnowledgeEventApproved, KnowledgeEvent{Type: KnowledgeEventApproved}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !calledA || !calledB {
		t.Fatalf("expected handlers to be called")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewKnowledgeEventBus()
	called := false
	unsubscribe := bus.Subscribe(KnowledgeEventRejected, func(ctx context.Context, event KnowledgeEvent) error {
		called = true
		return nil
	})
	unsubscribe()

	if err := bus.Publish(context.Background(), KnowledgeEventRejected, KnowledgeEvent{Type: KnowledgeEventRejected}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler to be unsubscribed")
	}
}

func TestBusPublishJoinErrors(t *testing.T) {
	bus := NewKnowledgeEventBus()
	bus.Subscribe(KnowledgeEventSubmitted, func(ctx context.Context, event KnowledgeEvent) error {
		return errors.New("err-a")
	})
	bus.Subscribe(KnowledgeEventSubmitted, func(ctx context.Context, event KnowledgeEvent) error {
		return errors.New("err-b")
	})

	if err := bus.Publish(context.Background(), KnowledgeEventSubmitted, KnowledgeEvent{Type: KnowledgeEventSubmitted}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBusPublishNoSubscribers(t *testing.T) {
	bus := NewKnowledgeEventBus()
	if err := bus.Publish(context.Background(), KnowledgeEventPromptActivated, KnowledgeEvent{Type: KnowledgeEventPromptActivated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
