package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/internal/eventbus"
	"github.com/aura-assistant/backend/internal/model"
	"github.com/aura-assistant/backend/internal/repository"
)

// ErrInvalidStatus transition target is not a terminal status
var ErrInvalidStatus = errors.New("status must be either 'approved' or 'rejected'")

// DefaultPrompt is the base prompt used when no active prompt row exists or
// the prompt read fails.
const DefaultPrompt = "You are an Instagram talent scout for AURA Modeling. Be friendly and helpful."

// AnonymousSubmitter is recorded when a submission carries no identity.
const AnonymousSubmitter = "anonymous"

// KnowledgeService owns the moderated knowledge corpus and the active prompt.
type KnowledgeService interface {
	// GetActivePrompt returns the active prompt content, falling back to
	// DefaultPrompt when none exists or the read fails.
	GetActivePrompt(ctx context.Context) string

	// SetActivePrompt activates a new prompt, deactivating the previous one.
	SetActivePrompt(ctx context.Context, content string) (*model.Prompt, error)

	SubmitInstruction(ctx context.Context, content, createdBy string) (*model.Instruction, error)
	SubmitSuggestion(ctx context.Context, question, reply, createdBy string) (*model.Suggestion, error)

	ListInstructions(ctx context.Context, status string) ([]model.Instruction, error)
	ListSuggestions(ctx context.Context, status string) ([]model.Suggestion, error)

	// TransitionInstruction moves a pending instruction to approved or
	// rejected. Both terminal states record approved_at (and approved_by when
	// given); the column names are historical, they are set on rejection too.
	TransitionInstruction(ctx context.Context, id uint, status, approvedBy string) (*model.Instruction, error)
	TransitionSuggestion(ctx context.Context, id uint, status, approvedBy string) (*model.Suggestion, error)
}

type knowledgeService struct {
	prompts      repository.PromptRepository
	instructions repository.InstructionRepository
	suggestions  repository.SuggestionRepository
	bus          *eventbus.KnowledgeEventBus
}

// NewKnowledgeService wires the knowledge store over its repositories.
func NewKnowledgeService(
	prompts repository.PromptRepository,
	instructions repository.InstructionRepository,
	suggestions repository.SuggestionRepository,
	bus *eventbus.KnowledgeEventBus,
) KnowledgeService {
	return &knowledgeService{
		prompts:      prompts,
		instructions: instructions,
		suggestions:  suggestions,
		bus:          bus,
	}
}

func (s *knowledgeService) GetActivePrompt(ctx context.Context) string {
	prompt, err := s.prompts.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			klog.Errorf("failed to fetch active prompt: %v", err)
		}
		return DefaultPrompt
	}
	return prompt.Content
}

func (s *knowledgeService) SetActivePrompt(ctx context.Context, content string) (*model.Prompt, error) {
	prompt := &model.Prompt{Content: content}
	if err := s.prompts.Activate(ctx, prompt); err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.KnowledgeEvent{
		Type:   eventbus.KnowledgeEventPromptActivated,
		Kind:   eventbus.KindPrompt,
		ItemID: prompt.ID,
	})
	return prompt, nil
}

func (s *knowledgeService) SubmitInstruction(ctx context.Context, content, createdBy string) (*model.Instruction, error) {
	instruction := &model.Instruction{
		Content:   strings.TrimSpace(content),
		Status:    model.StatusPending,
		CreatedBy: submitterOrAnonymous(createdBy),
	}
	if err := s.instructions.Create(ctx, instruction); err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.KnowledgeEvent{
		Type:   eventbus.KnowledgeEventSubmitted,
		Kind:   eventbus.KindInstruction,
		ItemID: instruction.ID,
		Actor:  instruction.CreatedBy,
		Status: instruction.Status,
	})
	return instruction, nil
}

func (s *knowledgeService) SubmitSuggestion(ctx context.Context, question, reply, createdBy string) (*model.Suggestion, error) {
	suggestion := &model.Suggestion{
		Question:       strings.TrimSpace(question),
		SuggestedReply: strings.TrimSpace(reply),
		Status:         model.StatusPending,
		CreatedBy:      submitterOrAnonymous(createdBy),
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.KnowledgeEvent{
		Type:   eventbus.KnowledgeEventSubmitted,
		Kind:   eventbus.KindSuggestion,
		ItemID: suggestion.ID,
		Actor:  suggestion.CreatedBy,
		Status: suggestion.Status,
	})
	return suggestion, nil
}

func (s *knowledgeService) ListInstructions(ctx context.Context, status string) ([]model.Instruction, error) {
	return s.instructions.List(ctx, status)
}

func (s *knowledgeService) ListSuggestions(ctx context.Context, status string) ([]model.Suggestion, error) {
	return s.suggestions.List(ctx, status)
}

func (s *knowledgeService) TransitionInstruction(ctx context.Context, id uint, status, approvedBy string) (*model.Instruction, error) {
	if !model.IsTerminalStatus(status) {
		return nil, ErrInvalidStatus
	}

	instruction, err := s.instructions.UpdateStatus(ctx, id, status, approvedBy, time.Now())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.KnowledgeEvent{
		Type:   transitionEventType(status),
		Kind:   eventbus.KindInstruction,
		ItemID: instruction.ID,
		Actor:  approvedBy,
		Status: status,
	})
	return instruction, nil
}

func (s *knowledgeService) TransitionSuggestion(ctx context.Context, id uint, status, approvedBy string) (*model.Suggestion, error) {
	if !model.IsTerminalStatus(status) {
		return nil, ErrInvalidStatus
	}

	suggestion, err := s.suggestions.UpdateStatus(ctx, id, status, approvedBy, time.Now())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.KnowledgeEvent{
		Type:   transitionEventType(status),
		Kind:   eventbus.KindSuggestion,
		ItemID: suggestion.ID,
		Actor:  approvedBy,
		Status: status,
	})
	return suggestion, nil
}

// publish emits a moderation event. Subscriber failures are logged and do
// not affect the write that triggered them.
func (s *knowledgeService) publish(ctx context.Context, event eventbus.KnowledgeEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.Type, event); err != nil {
		klog.V(6).Infof("knowledge event publish failed: type=%s, err=%v", event.Type, err)
	}
}

func submitterOrAnonymous(createdBy string) string {
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return AnonymousSubmitter
	}
	return createdBy
}

func transitionEventType(status string) eventbus.KnowledgeEventType {
	if status == model.StatusApproved {
		return eventbus.KnowledgeEventApproved
	}
	return eventbus.KnowledgeEventRejected
}
