package model

import (
	"time"
)

// Knowledge moderation statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Prompt is a system prompt revision. At most one row is active at a time;
// activation deactivates the previous row inside one transaction.
type Prompt struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	IsActive  bool      `json:"is_active" gorm:"index;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// Instruction is an admin-moderated behavioral rule. Created pending; approved
// instructions are appended to the composed prompt.
type Instruction struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	Status     string     `json:"status" gorm:"size:20;default:pending;index"` // pending, approved, rejected
	CreatedBy  string     `json:"created_by" gorm:"size:255"`
	ApprovedBy string     `json:"approved_by" gorm:"size:255"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Suggestion is a user-submitted Q&A pair. Same lifecycle as Instruction.
type Suggestion struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Question       string     `json:"question" gorm:"type:text;not null"`
	SuggestedReply string     `json:"suggested_reply" gorm:"type:text;not null"`
	Status         string     `json:"status" gorm:"size:20;default:pending;index"` // pending, approved, rejected
	CreatedBy      string     `json:"created_by" gorm:"size:255"`
	ApprovedBy     string     `json:"approved_by" gorm:"size:255"`
	ApprovedAt     *time.Time `json:"approved_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Chat is one conversation. Deleting a chat deletes its messages first.
type Chat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;default:'New Chat'"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
}

// Message is one half of a turn. Append-only, ordered by created_at then id.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ChatID    uint      `json:"chat_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Role      string    `json:"role" gorm:"size:20;not null"` // user, assistant
	CreatedAt time.Time `json:"created_at"`
}

// IsTerminalStatus reports whether status is a terminal moderation state.
func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
