package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/services"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projectService *services.Project
	taskService    *services.Task
	progress       *services.Progress
}

// NewProjectHandler creates a new instance of ProjectHandler
func NewProjectHandler(projectService *services.Project, taskService *services.Task, progress *services.Progress) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
		progress:       progress,
	}
}

// ListProjects handles retrieving all projects with pagination
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	listOpts := getPaginationOptions(page)

	projects, err := h.projectService.List(c.Context(), listOpts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}

	return c.JSON(success(map[string]interface{}{
		"projects": projects,
		"pagination": PaginationResponse{
			Total:  len(projects),
			Page:   page,
			Limit:  listOpts.Limit,
			Offset: listOpts.Offset,
		},
	}))
}

// GetProject handles retrieving a project by ID
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid project ID"))
	}

	project, err := h.projectService.Get(c.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound("Project not found"))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(project))
}

// GetProjectTree handles retrieving a project's full task forest
func (h *ProjectHandler) GetProjectTree(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid project ID"))
	}

	if _, err := h.projectService.Get(c.Context(), uint(id)); errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound("Project not found"))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}

	tree, err := h.taskService.Tree(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(tree))
}

// CreateProject handles creating a project
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CategoryID  *uint  `json:"categoryId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid request body"))
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Project name is required"))
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      models.ProjectStatusActive,
	}
	if err := h.projectService.Create(c.Context(), &project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(success(project))
}

// UpdateProject handles a partial update of a project
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid project ID"))
	}

	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		CategoryID      *uint   `json:"categoryId"`
		Status          *string `json:"status"`
		PercentComplete *int    `json:"percentComplete"`
		Roadblocks      *string `json:"roadblocks"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid request body"))
	}

	if _, err := h.projectService.Get(c.Context(), uint(id)); errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound("Project not found"))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.Status != nil {
		status, err := models.ParseProjectStatus(*req.Status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
		}
		fields["status"] = status
	}
	if req.PercentComplete != nil {
		fields[models.ProjectPercentCompleteField] = *req.PercentComplete
	}
	if req.Roadblocks != nil {
		fields[models.ProjectRoadblocksField] = *req.Roadblocks
	}

	if len(fields) > 0 {
		if err := h.projectService.Update(c.Context(), uint(id), fields); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
		}
	}

	project, err := h.projectService.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.JSON(success(project))
}

// DeleteProject handles deleting a project and all of its tasks
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("Invalid project ID"))
	}

	if err := h.projectService.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
