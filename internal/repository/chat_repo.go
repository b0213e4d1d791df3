package repository

import (
	"context"
	"errors"

	"github.com/aura-assistant/backend/internal/model"
	"gorm.io/gorm"
)

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, chat *model.Chat) error {
	if chat.Title == "" {
		chat.Title = "New Chat"
	}
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepository) Get(ctx context.Context, id uint) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.WithContext(ctx).First(&chat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) List(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&chats).Error
	return chats, err
}

func (r *chatRepository) UpdateTitle(ctx context.Context, id uint, title string) (*model.Chat, error) {
	chat, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(chat).Update("title", title).Error; err != nil {
		return nil, err
	}
	chat.Title = title
	return chat, nil
}

// Delete removes dependent messages before the chat row. The ordering is a
// hard requirement: a chat row must never be removed while its messages remain.
func (r *chatRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chat model.Chat
		if err := tx.First(&chat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("chat_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chat{}, id).Error
	})
}
