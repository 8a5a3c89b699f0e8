package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stackplan/stackplan/internal/services"
)

// ConversationHandler handles HTTP requests for conversations
type ConversationHandler struct {
	conversationService *services.Conversation
}

// NewConversationHandler creates a new instance of ConversationHandler
func NewConversationHandler(conversationService *services.Conversation) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
	}
}

// ListConversations handles retrieving conversations ordered by recency
func (h *ConversationHandler) ListConversations(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	listOpts := getPaginationOptions(page)

	conversations, err := h.conversationService.List(c.Context(), listOpts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}

	return c.JSON(success(map[string]interface{}{
		"conversations": conversations,
		"pagination": PaginationResponse{
			Total:  len(conversations),
			Page:   page,
			Limit:  listOpts.Limit,
			Offset: listOpts.Offset,
		},
	}))
}

// GetConversationMessages handles retrieving a conversation's messages
func (h *ConversationHandler) GetConversationMessages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid conversation ID"))
	}

	messages, err := h.conversationService.History(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound("Conversation not found"))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(messages))
}

// DeleteConversation handles deleting a conversation and its messages
func (h *ConversationHandler) DeleteConversation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid conversation ID"))
	}

	if err := h.conversationService.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
