package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/stackplan/stackplan/config"
)

// DefaultCompletionTimeout bounds a single model call
const DefaultCompletionTimeout = 60 * time.Second

// ChatMessage is one role/content pair sent to the model
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the opaque language-model boundary: a prompt plus
// conversation history in, raw text out. Everything downstream of it
// must tolerate arbitrary output.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// OpenAIClient calls an OpenAI-compatible chat-completions endpoint
type OpenAIClient struct {
	cfg     config.Assistant
	timeout time.Duration
}

// NewOpenAIClient creates a new OpenAIClient from the assistant config
func NewOpenAIClient(cfg config.Assistant) *OpenAIClient {
	return &OpenAIClient{
		cfg:     cfg,
		timeout: DefaultCompletionTimeout,
	}
}

type completionRequest struct {
	Model          string            `json:"model"`
	Messages       []ChatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the messages to the configured model and returns the
// raw assistant text.
func (c *OpenAIClient) Complete(_ context.Context, messages []ChatMessage) (string, error) {
	req := completionRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		// Ask for a JSON object so the plan parser has a fighting chance.
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	agent := fiber.Post(c.cfg.BaseURL + "/chat/completions")
	agent.Set(fiber.HeaderAuthorization, "Bearer "+c.cfg.APIKey)
	agent.Timeout(c.timeout)
	agent.JSON(req)

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("completion request failed: %w", errs[0])
	}

	var resp completionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if statusCode != fiber.StatusOK {
		msg := "unknown error"
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", fmt.Errorf("completion request returned %d: %s", statusCode, msg)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
