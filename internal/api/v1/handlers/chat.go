package handlers

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/stackplan/stackplan/internal/assistant"
	"github.com/stackplan/stackplan/internal/logger"
)

// streamWordDelay paces the cosmetic word-by-word stream
const streamWordDelay = 20 * time.Millisecond

// ChatHandler handles the assistant chat endpoint
type ChatHandler struct {
	chatService *assistant.Chat
}

// NewChatHandler creates a new instance of ChatHandler
func NewChatHandler(chatService *assistant.Chat) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Chat handles one assistant turn. All mutations are committed before
// the first byte is streamed: the word-by-word pacing is cosmetic, not
// speculative execution. The stream always ends with a [DONE] frame,
// including on failure, so the client's reader never hangs.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		ConversationID *string `json:"conversationId"`
		Message        string  `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid request body"))
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Message is required"))
	}

	var conversationID *uuid.UUID
	if req.ConversationID != nil {
		id, err := uuid.Parse(*req.ConversationID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid conversation ID"))
		}
		conversationID = &id
	}

	result, err := h.chatService.Respond(c.Context(), conversationID, req.Message)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			fmt.Fprint(w, "data: [DONE]\n\n")
			w.Flush()
		}()

		if err != nil {
			logger.Errorf("chat turn failed: %v", err)
			fmt.Fprint(w, "data: Something went wrong. Please try again.\n\n")
			w.Flush()
			return
		}

		fmt.Fprintf(w, "event: meta\ndata: {\"conversationId\":%q,\"actionsExecuted\":%d}\n\n",
			result.ConversationID, result.ActionsExecuted)
		w.Flush()

		for _, line := range strings.Split(result.Reply, "\n") {
			for _, word := range strings.Fields(line) {
				fmt.Fprintf(w, "data: %s \n\n", word)
				if w.Flush() != nil {
					return
				}
				time.Sleep(streamWordDelay)
			}
			fmt.Fprint(w, "data: \n\n")
			if w.Flush() != nil {
				return
			}
		}
	}))

	return nil
}
