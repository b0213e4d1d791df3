package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aura-assistant/backend/internal/eventbus"
	"github.com/aura-assistant/backend/internal/model"
	"github.com/aura-assistant/backend/internal/repository"
)

func newKnowledgeFixture(t *testing.T) (KnowledgeService, *eventbus.KnowledgeEventBus) {
	t.Helper()
	db := newTestDB(t)
	bus := eventbus.NewKnowledgeEventBus()
	svc := NewKnowledgeService(
		repository.NewPromptRepository(db),
		repository.NewInstructionRepository(db),
		repository.NewSuggestionRepository(db),
		bus,
	)
	return svc, bus
}

func TestSetActivePromptSequential(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)
	ctx := context.Background()

	for _, content := range []string{"v1", "v2", "v3"} {
		_, err := svc.SetActivePrompt(ctx, content)
		assert.NoError(t, err)
	}

	assert.Equal(t, "v3", svc.GetActivePrompt(ctx))
}

func TestGetActivePromptFallsBackToDefault(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)

	assert.Equal(t, DefaultPrompt, svc.GetActivePrompt(context.Background()))
}

func TestSubmitForcesPendingAndTrims(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)
	ctx := context.Background()

	instruction, err := svc.SubmitInstruction(ctx, "  be nice  ", "")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, instruction.Status)
	assert.Equal(t, "be nice", instruction.Content)
	assert.Equal(t, AnonymousSubmitter, instruction.CreatedBy)

	suggestion, err := svc.SubmitSuggestion(ctx, " price? ", " ask Giannis ", "maria")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, suggestion.Status)
	assert.Equal(t, "price?", suggestion.Question)
	assert.Equal(t, "ask Giannis", suggestion.SuggestedReply)
	assert.Equal(t, "maria", suggestion.CreatedBy)
}

func TestTransitionRejectsInvalidStatus(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)
	ctx := context.Background()

	instruction, err := svc.SubmitInstruction(ctx, "rule", "")
	assert.NoError(t, err)

	for _, status := range []string{"pending", "archived", "", "APPROVED"} {
		_, err := svc.TransitionInstruction(ctx, instruction.ID, status, "admin")
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q should be invalid", status)
	}
}

func TestTransitionNotFound(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)

	_, err := svc.TransitionSuggestion(context.Background(), 4242, model.StatusApproved, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransitionRecordsModerator(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)
	ctx := context.Background()

	suggestion, err := svc.SubmitSuggestion(ctx, "price?", "ask Giannis", "")
	assert.NoError(t, err)

	rejected, err := svc.TransitionSuggestion(ctx, suggestion.ID, model.StatusRejected, "admin")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)
	assert.Equal(t, "admin", rejected.ApprovedBy)
	assert.NotNil(t, rejected.ApprovedAt, "approved_at is recorded on rejection too")
}

func TestModerationLifecycleMovesBetweenLists(t *testing.T) {
	svc, _ := newKnowledgeFixture(t)
	ctx := context.Background()

	suggestion, err := svc.SubmitSuggestion(ctx, "price?", "ask Giannis", "")
	assert.NoError(t, err)

	pending, err := svc.ListSuggestions(ctx, model.StatusPending)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = svc.TransitionSuggestion(ctx, suggestion.ID, model.StatusApproved, "admin")
	assert.NoError(t, err)

	pending, err = svc.ListSuggestions(ctx, model.StatusPending)
	assert.NoError(t, err)
	assert.Empty(t, pending)

	approved, err := svc.ListSuggestions(ctx, model.StatusApproved)
	assert.NoError(t, err)
	assert.Len(t, approved, 1)
	assert.Equal(t, "price?", approved[0].Question)
}

func TestKnowledgeEventsPublished(t *testing.T) {
	svc, bus := newKnowledgeFixture(t)
	ctx := context.Background()

	var events []eventbus.KnowledgeEvent
	record := func(ctx context.Context, event eventbus.KnowledgeEvent) error {
		events = append(events, event)
		return nil
	}
	bus.Subscribe(eventbus.KnowledgeEventSubmitted, record)
	bus.Subscribe(eventbus.KnowledgeEventApproved, record)
	bus.Subscribe(eventbus.KnowledgeEventPromptActivated, record)

	instruction, err := svc.SubmitInstruction(ctx, "rule", "maria")
	assert.NoError(t, err)
	_, err = svc.TransitionInstruction(ctx, instruction.ID, model.StatusApproved, "admin")
	assert.NoError(t, err)
	_, err = svc.SetActivePrompt(ctx, "new prompt")
	assert.NoError(t, err)

	assert.Len(t, events, 3)
	assert.Equal(t, eventbus.KnowledgeEventSubmitted, events[0].Type)
	assert.Equal(t, "maria", events[0].Actor)
	assert.Equal(t, eventbus.KnowledgeEventApproved, events[1].Type)
	assert.Equal(t, eventbus.KindInstruction, events[1].Kind)
	assert.Equal(t, eventbus.KnowledgeEventPromptActivated, events[2].Type)
}

func TestKnowledgeEventFailureDoesNotAbortWrite(t *testing.T) {
	svc, bus := newKnowledgeFixture(t)
	ctx := context.Background()

	bus.Subscribe(eventbus.KnowledgeEventSubmitted, func(ctx context.Context, event eventbus.KnowledgeEvent) error {
		return errors.New("subscriber down")
	})

	instruction, err := svc.SubmitInstruction(ctx, "rule", "")
	assert.NoError(t, err)
	assert.NotZero(t, instruction.ID)
}
