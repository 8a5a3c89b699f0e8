package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
)

// titleMaxLen caps the auto-generated conversation title length
const titleMaxLen = 60

// Conversation handles chat conversation and message operations
type Conversation struct {
	repo *repos.ConversationRepository
}

// NewConversationService creates a new instance of ConversationService
func NewConversationService(repo *repos.ConversationRepository) *Conversation {
	return &Conversation{
		repo: repo,
	}
}

// Ensure returns the conversation with the given id, or lazily creates a
// new one titled after the first user message when no id is supplied.
func (s *Conversation) Ensure(ctx context.Context, id *uuid.UUID, firstMessage string) (*models.Conversation, error) {
	if id != nil {
		return s.repo.Get(ctx, *id)
	}
	conversation := &models.Conversation{Title: titleFor(firstMessage)}
	if err := s.repo.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// Append adds a message to a conversation and bumps its recency
func (s *Conversation) Append(ctx context.Context, conversationID uuid.UUID, role models.MessageRole, content string) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := s.repo.AppendMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	if err := s.repo.Touch(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}
	return message, nil
}

// History retrieves a conversation's messages in chronological order
func (s *Conversation) History(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	return s.repo.ListMessages(ctx, conversationID)
}

// List retrieves conversations ordered by recency
func (s *Conversation) List(ctx context.Context, opts *models.ListOptions) ([]models.Conversation, error) {
	return s.repo.List(ctx, opts)
}

// Delete removes a conversation and all of its messages
func (s *Conversation) Delete(ctx context.Context, conversationID uuid.UUID) error {
	return s.repo.Delete(ctx, conversationID)
}

func titleFor(message string) string {
	title := strings.TrimSpace(message)
	if title == "" {
		return "New conversation"
	}
	if len(title) > titleMaxLen {
		title = title[:titleMaxLen]
	}
	return title
}
