package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/services"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService *services.Category
}

// NewCategoryHandler creates a new instance of CategoryHandler
func NewCategoryHandler(categoryService *services.Category) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories handles retrieving all categories
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(categories))
}

// CreateCategory handles creating a category
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid request body"))
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Category name is required"))
	}

	category := models.Category{Name: req.Name, Color: req.Color}
	if err := h.categoryService.Create(c.Context(), &category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(success(category))
}

// DeleteCategory handles deleting a category by ID
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid category ID"))
	}

	if err := h.categoryService.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
