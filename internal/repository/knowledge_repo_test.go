package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aura-assistant/backend/internal/model"
)

func TestInstructionRepositoryListFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstructionRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	rows := []model.Instruction{
		{Content: "oldest", Status: model.StatusPending, CreatedAt: base},
		{Content: "middle", Status: model.StatusApproved, CreatedAt: base.Add(time.Minute)},
		{Content: "newest", Status: model.StatusPending, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(all))
	}
	if all[0].Content != "newest" {
		t.Fatalf("expected newest first, got %q", all[0].Content)
	}

	pending, err := repo.List(ctx, model.StatusPending)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending instructions, got %d", len(pending))
	}
}

func TestInstructionRepositoryListApprovedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstructionRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	rows := []model.Instruction{
		{Content: "second", Status: model.StatusApproved, CreatedAt: base.Add(time.Minute)},
		{Content: "first", Status: model.StatusApproved, CreatedAt: base},
		{Content: "never", Status: model.StatusRejected, CreatedAt: base},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	approved, err := repo.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved error: %v", err)
	}
	if len(approved) != 2 {
		t.Fatalf("expected 2 approved instructions, got %d", len(approved))
	}
	if approved[0].Content != "first" || approved[1].Content != "second" {
		t.Fatalf("expected creation order, got %q, %q", approved[0].Content, approved[1].Content)
	}
}

func TestInstructionRepositoryUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstructionRepository(db)
	ctx := context.Background()

	instruction := &model.Instruction{Content: "always greet", Status: model.StatusPending}
	if err := repo.Create(ctx, instruction); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	approvedAt := time.Now()
	updated, err := repo.UpdateStatus(ctx, instruction.ID, model.StatusRejected, "giannis", approvedAt)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != model.StatusRejected {
		t.Fatalf("expected rejected, got %q", updated.Status)
	}
	if updated.ApprovedBy != "giannis" {
		t.Fatalf("expected approver recorded on rejection too, got %q", updated.ApprovedBy)
	}
	if updated.ApprovedAt == nil {
		t.Fatalf("expected approved_at set on rejection too")
	}
}

func TestInstructionRepositoryUpdateStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstructionRepository(db)

	_, err := repo.UpdateStatus(context.Background(), 999, model.StatusApproved, "", time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSuggestionRepositoryListApprovedByApprovalTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewSuggestionRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)

	// A is created before B but approved after it; approval time wins.
	a := &model.Suggestion{Question: "price?", SuggestedReply: "ask Giannis", Status: model.StatusPending, CreatedAt: base}
	b := &model.Suggestion{Question: "hours?", SuggestedReply: "9 to 5", Status: model.StatusPending, CreatedAt: base.Add(time.Minute)}
	for _, s := range []*model.Suggestion{a, b} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	if _, err := repo.UpdateStatus(ctx, b.ID, model.StatusApproved, "", base.Add(3*time.Minute)); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, a.ID, model.StatusApproved, "", base.Add(5*time.Minute)); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	approved, err := repo.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved error: %v", err)
	}
	if len(approved) != 2 {
		t.Fatalf("expected 2 approved suggestions, got %d", len(approved))
	}
	if approved[0].Question != "hours?" || approved[1].Question != "price?" {
		t.Fatalf("expected approval order, got %q, %q", approved[0].Question, approved[1].Question)
	}
}

func TestSuggestionRepositoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewSuggestionRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	rows := []model.Suggestion{
		{Question: "q1", SuggestedReply: "r1", Status: model.StatusPending, CreatedAt: base},
		{Question: "q2", SuggestedReply: "r2", Status: model.StatusPending, CreatedAt: base.Add(time.Minute)},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	list, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].Question != "q2" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}
