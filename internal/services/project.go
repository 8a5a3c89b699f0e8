package services

import (
	"context"
	"fmt"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
)

// Project handles project-related operations
type Project struct {
	repo  *repos.ProjectRepository
	tasks *repos.TaskRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository, tasks *repos.TaskRepository) *Project {
	return &Project{
		repo:  repo,
		tasks: tasks,
	}
}

// Create creates a new project
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	return s.repo.Create(ctx, project)
}

// Get retrieves a project by ID
func (s *Project) Get(ctx context.Context, projectID uint) (*models.Project, error) {
	return s.repo.Get(ctx, projectID)
}

// List retrieves all projects with pagination
func (s *Project) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	return s.repo.List(ctx, opts)
}

// Update applies a partial update to a project. No aggregate
// recomputation happens here: a direct write may deliberately override
// the derived percent complete.
func (s *Project) Update(ctx context.Context, projectID uint, fields map[string]interface{}) error {
	return s.repo.Update(ctx, projectID, fields)
}

// Delete removes a project together with all of its tasks
func (s *Project) Delete(ctx context.Context, projectID uint) error {
	if err := s.tasks.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}
	return s.repo.Delete(ctx, projectID)
}
