package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/internal/model"
)

// titleBudget is the character budget for a derived chat title.
const titleBudget = 30

// ChatModel is the single text-generation call the turn engine consumes.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message) (*schema.Message, error)
}

// TurnResult is one completed turn.
type TurnResult struct {
	ChatID uint           `json:"chat_id"`
	Reply  *model.Message `json:"reply"`
}

// TurnService orchestrates one chat turn: persist the user message, compose
// the prompt, call the model, persist the reply.
type TurnService interface {
	// SubmitTurn runs one turn. A zero chatID creates a new chat first. The
	// user message is persisted before the model call, so a failed call never
	// loses the user's input; on failure no assistant message is written and
	// the error propagates.
	SubmitTurn(ctx context.Context, chatID uint, text string) (*TurnResult, error)
}

type turnService struct {
	chats     ChatService
	composer  *PromptComposer
	chatModel ChatModel
	timeout   time.Duration
}

// NewTurnService creates the turn engine. timeout bounds the model call; zero
// means no bound.
func NewTurnService(chats ChatService, composer *PromptComposer, chatModel ChatModel, timeout time.Duration) TurnService {
	return &turnService{
		chats:     chats,
		composer:  composer,
		chatModel: chatModel,
		timeout:   timeout,
	}
}

func (s *turnService) SubmitTurn(ctx context.Context, chatID uint, text string) (*TurnResult, error) {
	if chatID == 0 {
		chat, err := s.chats.CreateChat(ctx)
		if err != nil {
			return nil, fmt.Errorf("create chat: %w", err)
		}
		chatID = chat.ID
		klog.V(6).Infof("auto-created chat %d for first send", chatID)
	}

	// The user message is committed before anything that can fail downstream.
	userMessage, err := s.chats.AppendMessage(ctx, chatID, model.RoleUser, text)
	if err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	messages, err := s.chats.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	if len(messages) == 1 {
		title := deriveTitle(text)
		if _, err := s.chats.RenameChat(ctx, chatID, title); err != nil {
			// A failed rename leaves the default title; the turn continues.
			klog.Errorf("failed to set derived title for chat %d: %v", chatID, err)
		}
	}

	history := renderHistory(messages, userMessage.ID)
	composed := s.composer.Compose(ctx)
	request := fmt.Sprintf("Chat History:\n%s\n\nUser's Latest Query: %s", history, text)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.chatModel.Generate(callCtx, []*schema.Message{
		schema.SystemMessage(composed),
		schema.UserMessage(request),
	})
	if err != nil {
		// Half-committed turn: the user message stays, no assistant message.
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	assistantMessage, err := s.chats.AppendMessage(ctx, chatID, model.RoleAssistant, reply.Content)
	if err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}

	return &TurnResult{ChatID: chatID, Reply: assistantMessage}, nil
}

// renderHistory renders prior turns as "User:"/"AI:" lines, oldest first. The
// message just written for this turn is excluded; it travels as the latest
// query instead.
func renderHistory(messages []model.Message, excludeID uint) string {
	lines := make([]string, 0, len(messages))
	for _, message := range messages {
		if message.ID == excludeID {
			continue
		}
		label := "User"
		if message.Role == model.RoleAssistant {
			label = "AI"
		}
		lines = append(lines, label+": "+message.Content)
	}
	return strings.Join(lines, "\n")
}

// deriveTitle truncates the first message to the title budget, marking
// truncation with an ellipsis.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleBudget {
		return text
	}
	return string(runes[:titleBudget]) + "..."
}
