package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aura-assistant/backend/internal/model"
	"gorm.io/gorm"
)

type suggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *model.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *suggestionRepository) Get(ctx context.Context, id uint) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	err := r.db.WithContext(ctx).First(&suggestion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepository) List(ctx context.Context, status string) ([]model.Suggestion, error) {
	var suggestions []model.Suggestion
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&suggestions).Error
	return suggestions, err
}

// ListApproved orders by approval time so the composed prompt reflects
// moderation recency rather than submission order.
func (r *suggestionRepository) ListApproved(ctx context.Context) ([]model.Suggestion, error) {
	var suggestions []model.Suggestion
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusApproved).
		Order("approved_at ASC, id ASC").
		Find(&suggestions).Error
	return suggestions, err
}

func (r *suggestionRepository) UpdateStatus(ctx context.Context, id uint, status, approvedBy string, approvedAt time.Time) (*model.Suggestion, error) {
	suggestion, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      status,
		"approved_at": approvedAt,
	}
	if approvedBy != "" {
		updates["approved_by"] = approvedBy
	}

	if err := r.db.WithContext(ctx).Model(suggestion).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
