package repository

import (
	"context"
	"errors"

	"github.com/aura-assistant/backend/internal/model"
	"gorm.io/gorm"
)

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

// Activate deactivates all active prompts and inserts the new one in a single
// transaction, so readers never observe two active rows.
func (r *promptRepository) Activate(ctx context.Context, prompt *model.Prompt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Prompt{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		prompt.IsActive = true
		return tx.Create(prompt).Error
	})
}

func (r *promptRepository) GetActive(ctx context.Context) (*model.Prompt, error) {
	var prompt model.Prompt
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &prompt, nil
}
