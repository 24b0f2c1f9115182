package db_models

import (
	"github.com/google/uuid"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Conversation groups the generations of a chat-style flow session.
type Conversation struct {
	BaseModel
	UserID string    `gorm:"index"`
	FlowID uuid.UUID `gorm:"index"`
	Title  string

	Messages []Message `gorm:"constraint:OnDelete:CASCADE"`
}

type Message struct {
	BaseModel
	ConversationID uuid.UUID   `gorm:"index"`
	Role           MessageRole
	Content        string

	GenerationID *uuid.UUID `gorm:"index"`
	InputAssets  []string   `gorm:"serializer:json"`
	OutputAssets []string   `gorm:"serializer:json"`
}
