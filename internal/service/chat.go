package service

import (
	"context"

	"github.com/aura-assistant/backend/internal/model"
	"github.com/aura-assistant/backend/internal/repository"
)

// ChatService is the conversation store: chats and their ordered messages.
type ChatService interface {
	CreateChat(ctx context.Context) (*model.Chat, error)
	ListChats(ctx context.Context) ([]model.Chat, error)
	GetChat(ctx context.Context, id uint) (*model.Chat, error)

	// GetMessages returns the chat's messages oldest first. Returns
	// repository.ErrNotFound when the chat does not exist.
	GetMessages(ctx context.Context, chatID uint) ([]model.Message, error)

	// AppendMessage writes one message. The chat must exist at write time.
	AppendMessage(ctx context.Context, chatID uint, role, content string) (*model.Message, error)

	RenameChat(ctx context.Context, chatID uint, title string) (*model.Chat, error)

	// DeleteChat removes the chat and its messages, messages first.
	DeleteChat(ctx context.Context, chatID uint) error
}

type chatService struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
}

func NewChatService(chats repository.ChatRepository, messages repository.MessageRepository) ChatService {
	return &chatService{chats: chats, messages: messages}
}

func (s *chatService) CreateChat(ctx context.Context) (*model.Chat, error) {
	chat := &model.Chat{}
	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) ListChats(ctx context.Context) ([]model.Chat, error) {
	return s.chats.List(ctx)
}

func (s *chatService) GetChat(ctx context.Context, id uint) (*model.Chat, error) {
	return s.chats.Get(ctx, id)
}

func (s *chatService) GetMessages(ctx context.Context, chatID uint) ([]model.Message, error) {
	if _, err := s.chats.Get(ctx, chatID); err != nil {
		return nil, err
	}
	return s.messages.ListByChat(ctx, chatID)
}

func (s *chatService) AppendMessage(ctx context.Context, chatID uint, role, content string) (*model.Message, error) {
	if _, err := s.chats.Get(ctx, chatID); err != nil {
		return nil, err
	}

	message := &model.Message{
		ChatID:  chatID,
		Role:    role,
		Content: content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *chatService) RenameChat(ctx context.Context, chatID uint, title string) (*model.Chat, error) {
	return s.chats.UpdateTitle(ctx, chatID, title)
}

func (s *chatService) DeleteChat(ctx context.Context, chatID uint) error {
	return s.chats.Delete(ctx, chatID)
}
