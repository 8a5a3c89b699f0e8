package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/logger"
	"github.com/stackplan/stackplan/internal/services"
)

// Chat drives one assistant turn: conversation bookkeeping, the model
// call, plan execution and the final user-visible reply. All mutations
// are committed before the reply is handed back for streaming.
type Chat struct {
	completer     Completer
	interpreter   *Interpreter
	projects      *services.Project
	tasks         *services.Task
	categories    *services.Category
	conversations *services.Conversation
}

// NewChatService creates a new instance of ChatService
func NewChatService(
	completer Completer,
	interpreter *Interpreter,
	projects *services.Project,
	tasks *services.Task,
	categories *services.Category,
	conversations *services.Conversation,
) *Chat {
	return &Chat{
		completer:     completer,
		interpreter:   interpreter,
		projects:      projects,
		tasks:         tasks,
		categories:    categories,
		conversations: conversations,
	}
}

// ChatResult is the committed outcome of one assistant turn.
type ChatResult struct {
	ConversationID  uuid.UUID `json:"conversationId"`
	Reply           string    `json:"reply"`
	ActionsExecuted int       `json:"actionsExecuted"`
	NewProjectID    *uint     `json:"newProjectId,omitempty"`
}

// Respond processes one user message: it lazily creates the conversation,
// calls the model with the prior history plus a workspace snapshot,
// executes the resulting action batch, and persists both sides of the
// exchange. A failed or malformed model call degrades to the canned
// fallback and zero actions rather than an error.
func (s *Chat) Respond(ctx context.Context, conversationID *uuid.UUID, userMessage string) (*ChatResult, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	conversation, err := s.conversations.Ensure(ctx, conversationID, userMessage)
	if err != nil {
		return nil, err
	}

	history, err := s.conversations.History(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.conversations.Append(ctx, conversation.ID, models.MessageRoleUser, userMessage); err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	plan := s.interpret(ctx, history, userMessage, categories)
	batch := s.interpreter.Execute(ctx, plan.Actions, categories)

	reply := plan.ResponseMessage
	if len(batch.Log) > 0 {
		reply = fmt.Sprintf("Here's what I did:\n- %s\n\n%s",
			strings.Join(batch.Log, "\n- "), plan.ResponseMessage)
	}

	if _, err := s.conversations.Append(ctx, conversation.ID, models.MessageRoleAssistant, reply); err != nil {
		return nil, err
	}

	return &ChatResult{
		ConversationID:  conversation.ID,
		Reply:           reply,
		ActionsExecuted: len(batch.Log),
		NewProjectID:    batch.NewProjectID,
	}, nil
}

// interpret runs the model call and parses its output. Any failure along
// the way yields the fallback plan.
func (s *Chat) interpret(ctx context.Context, history []models.Message, userMessage string, categories []models.Category) Plan {
	prompt, err := BuildSystemPrompt(ctx, s.projects, s.tasks, categories)
	if err != nil {
		logger.Errorf("failed to build assistant prompt: %v", err)
		return Plan{ResponseMessage: FallbackMessage}
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: prompt})
	for _, message := range history {
		messages = append(messages, ChatMessage{Role: string(message.Role), Content: message.Content})
	}
	messages = append(messages, ChatMessage{Role: string(models.MessageRoleUser), Content: userMessage})

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		logger.Errorf("completion failed: %v", err)
		return Plan{ResponseMessage: FallbackMessage}
	}
	return ParsePlan(raw)
}
