package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aura-assistant/backend/internal/model"
)

// ErrNotFound record does not exist
var ErrNotFound = errors.New("record not found")

type PromptRepository interface {
	// Activate deactivates the current active prompt and inserts the new one
	// inside a single transaction.
	Activate(ctx context.Context, prompt *model.Prompt) error

	// GetActive returns the most recently created active prompt.
	GetActive(ctx context.Context) (*model.Prompt, error)
}

type InstructionRepository interface {
	Create(ctx context.Context, instruction *model.Instruction) error
	Get(ctx context.Context, id uint) (*model.Instruction, error)

	// List returns instructions newest first, optionally filtered by status.
	List(ctx context.Context, status string) ([]model.Instruction, error)

	// ListApproved returns approved instructions oldest created first,
	// the order in which they are rendered into the composed prompt.
	ListApproved(ctx context.Context) ([]model.Instruction, error)

	UpdateStatus(ctx context.Context, id uint, status, approvedBy string, approvedAt time.Time) (*model.Instruction, error)
}

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *model.Suggestion) error
	Get(ctx context.Context, id uint) (*model.Suggestion, error)

	// List returns suggestions newest first, optionally filtered by status.
	List(ctx context.Context, status string) ([]model.Suggestion, error)

	// ListApproved returns approved suggestions ordered by approval time,
	// oldest approved first. Approval time, not creation time, drives the
	// composed prompt ordering.
	ListApproved(ctx context.Context) ([]model.Suggestion, error)

	UpdateStatus(ctx context.Context, id uint, status, approvedBy string, approvedAt time.Time) (*model.Suggestion, error)
}

type ChatRepository interface {
	Create(ctx context.Context, chat *model.Chat) error
	Get(ctx context.Context, id uint) (*model.Chat, error)

	// List returns chats newest created first.
	List(ctx context.Context) ([]model.Chat, error)

	UpdateTitle(ctx context.Context, id uint, title string) (*model.Chat, error)

	// Delete removes the chat's messages first, then the chat itself, inside
	// one transaction. Messages must never outlive their chat.
	Delete(ctx context.Context, id uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error

	// ListByChat returns messages oldest first.
	ListByChat(ctx context.Context, chatID uint) ([]model.Message, error)
}
