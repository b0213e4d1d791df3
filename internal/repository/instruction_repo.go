package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aura-assistant/backend/internal/model"
	"gorm.io/gorm"
)

type instructionRepository struct {
	db *gorm.DB
}

func NewInstructionRepository(db *gorm.DB) InstructionRepository {
	return &instructionRepository{db: db}
}

func (r *instructionRepository) Create(ctx context.Context, instruction *model.Instruction) error {
	return r.db.WithContext(ctx).Create(instruction).Error
}

func (r *instructionRepository) Get(ctx context.Context, id uint) (*model.Instruction, error) {
	var instruction model.Instruction
	err := r.db.WithContext(ctx).First(&instruction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &instruction, nil
}

func (r *instructionRepository) List(ctx context.Context, status string) ([]model.Instruction, error) {
	var instructions []model.Instruction
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&instructions).Error
	return instructions, err
}

func (r *instructionRepository) ListApproved(ctx context.Context) ([]model.Instruction, error) {
	var instructions []model.Instruction
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusApproved).
		Order("created_at ASC, id ASC").
		Find(&instructions).Error
	return instructions, err
}

func (r *instructionRepository) UpdateStatus(ctx context.Context, id uint, status, approvedBy string, approvedAt time.Time) (*model.Instruction, error) {
	instruction, err := r.Get(ctx, id)
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

	if err := r.db.WithContext(ctx).Model(instruction).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
