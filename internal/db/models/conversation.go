package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRole identifies who authored a chat message
type MessageRole string

// Message role constants
const (
	// MessageRoleUser marks a message written by the end user
	MessageRoleUser MessageRole = "user"
	// MessageRoleAssistant marks a message produced by the assistant
	MessageRoleAssistant MessageRole = "assistant"
)

// ParseMessageRole converts a string to a MessageRole type
func ParseMessageRole(str string) (MessageRole, error) {
	switch str {
	case string(MessageRoleUser):
		return MessageRoleUser, nil
	case string(MessageRoleAssistant):
		return MessageRoleAssistant, nil
	default:
		return "", fmt.Errorf("invalid message role: %s", str)
	}
}

// Conversation stores an assistant chat thread. UpdatedAt is bumped on
// every message append so listings sort by recency.
type Conversation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Messages  []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}

// BeforeCreate is a GORM hook that assigns the conversation ID
func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Message is a single append-only entry in a conversation.
type Message struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID   `json:"conversationId" gorm:"type:uuid;not null;index"`
	Role           MessageRole `json:"role" gorm:"not null"`
	Content        string      `json:"content" gorm:"type:text;not null"`
	CreatedAt      time.Time   `json:"created_at" gorm:"index"`
}

// BeforeCreate is a GORM hook that assigns the message ID and validates the role
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if _, err := ParseMessageRole(string(m.Role)); err != nil {
		return err
	}
	return nil
}
