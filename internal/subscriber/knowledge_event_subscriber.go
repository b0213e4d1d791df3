package subscriber

import (
	"context"

	"github.com/aura-assistant/backend/internal/eventbus"
	"k8s.io/klog/v2"
)

// KnowledgeEventSubscriber writes an audit trail of moderation activity to the
// log. Submissions and transitions are low-volume, so synchronous logging on
// the publish path is fine.
type KnowledgeEventSubscriber struct{}

func NewKnowledgeEventSubscriber() *KnowledgeEventSubscriber {
	return &KnowledgeEventSubscriber{}
}

func (s *KnowledgeEventSubscriber) Register(bus *eventbus.KnowledgeEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.KnowledgeEventSubmitted, s.handleSubmitted)
	bus.Subscribe(eventbus.KnowledgeEventApproved, s.handleModerated)
	bus.Subscribe(eventbus.KnowledgeEventRejected, s.handleModerated)
	bus.Subscribe(eventbus.KnowledgeEventPromptActivated, s.handlePromptActivated)
}

func (s *KnowledgeEventSubscriber) handleSubmitted(ctx context.Context, event eventbus.KnowledgeEvent) error {
	klog.V(6).Infof("knowledge submitted: kind=%s, id=%d, by=%s", event.Kind, event.ItemID, event.Actor)
	return nil
}

func (s *KnowledgeEventSubscriber) handleModerated(ctx context.Context, event eventbus.KnowledgeEvent) error {
	klog.V(6).Infof("knowledge moderated: kind=%s, id=%d, status=%s, by=%s", event.Kind, event.ItemID, event.Status, event.Actor)
	return nil
}

func (s *KnowledgeEventSubscriber) handlePromptActivated(ctx context.Context, event eventbus.KnowledgeEvent) error {
	klog.V(6).Infof("prompt activated: id=%d", event.ItemID)
	return nil
}
