package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/services"
)

// TaskHandler handles HTTP requests for tasks
type TaskHandler struct {
	taskService *services.Task
}

// NewTaskHandler creates a new instance of TaskHandler
func NewTaskHandler(taskService *services.Task) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListProjectTasks handles retrieving the flat task list of a project
func (h *TaskHandler) ListProjectTasks(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid project ID"))
	}

	tasks, err := h.taskService.ListByProject(c.Context(), uint(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(tasks))
}

// GetTask handles retrieving a task by ID
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid task ID"))
	}

	task, err := h.taskService.Get(c.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound("Task not found"))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(task))
}

// CreateTask handles creating a task
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req struct {
		ProjectID    uint   `json:"projectId"`
		ParentTaskID *uint  `json:"parentTaskId"`
		Name         string `json:"name"`
		Description  string `json:"description"`
		SortOrder    int    `json:"sortOrder"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid request body"))
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Task name is required"))
	}
	if req.ProjectID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Project ID is required"))
	}

	task := models.Task{
		ProjectID:    req.ProjectID,
		ParentTaskID: req.ParentTaskID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
		Status:       models.TaskStatusPending,
	}
	if err := h.taskService.Create(c.Context(), &task); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(success(task))
}

// UpdateTask handles a partial update of a task. A percentComplete write
// on a leaf task derives isCompleted and status; the progress cascade
// then fixes up every ancestor and the project.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid task ID"))
	}

	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		PercentComplete *int    `json:"percentComplete"`
		IsCompleted     *bool   `json:"isCompleted"`
		Status          *string `json:"status"`
		Roadblocks      *string `json:"roadblocks"`
		SortOrder       *int    `json:"sortOrder"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid request body"))
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PercentComplete != nil {
		percent := *req.PercentComplete
		if percent < 0 || percent > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("percentComplete must be between 0 and 100"))
		}
		fields[models.TaskPercentCompleteField] = percent
		fields[models.TaskIsCompletedField] = percent == 100
		if percent > 0 {
			fields[models.TaskStatusField] = models.StatusForPercent(percent)
		}
	}
	if req.IsCompleted != nil {
		fields[models.TaskIsCompletedField] = *req.IsCompleted
		if *req.IsCompleted && req.PercentComplete == nil {
			fields[models.TaskPercentCompleteField] = 100
		}
	}
	if req.Status != nil {
		fields[models.TaskStatusField] = *req.Status
	}
	if req.Roadblocks != nil {
		fields[models.TaskRoadblocksField] = *req.Roadblocks
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}

	if err := h.taskService.Update(c.Context(), uint(id), fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound("Task not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}

	task, err := h.taskService.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(task))
}

// DeleteTask handles deleting a task and its whole subtree
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid task ID"))
	}

	if err := h.taskService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound("Task not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
