package services

import (
	"context"
	"fmt"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
)

// Task handles task-related operations. Every mutation re-runs the
// progress cascade for the task's parent chain and project.
type Task struct {
	repo     *repos.TaskRepository
	progress *Progress
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(repo *repos.TaskRepository, progress *Progress) *Task {
	return &Task{
		repo:     repo,
		progress: progress,
	}
}

// Create creates a new task and recomputes the aggregates it affects
func (s *Task) Create(ctx context.Context, task *models.Task) error {
	if err := s.repo.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return s.progress.Cascade(ctx, task.ParentTaskID, task.ProjectID)
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, taskID uint) (*models.Task, error) {
	return s.repo.Get(ctx, taskID)
}

// ListByProject retrieves all tasks for a specific project
func (s *Task) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Tree materializes the project's task forest for display or for the
// assistant's context snapshot.
func (s *Task) Tree(ctx context.Context, projectID uint) ([]*TaskNode, error) {
	tasks, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return BuildTaskTree(tasks), nil
}

// Update applies a partial update to a task and recomputes the
// aggregates it affects
func (s *Task) Update(ctx context.Context, taskID uint, fields map[string]interface{}) error {
	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if len(fields) > 0 {
		if err := s.repo.Update(ctx, taskID, fields); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
	}
	return s.progress.Cascade(ctx, task.ParentTaskID, task.ProjectID)
}

// Delete removes a task and its whole subtree, then recomputes the
// aggregates of the former parent and the project.
func (s *Task) Delete(ctx context.Context, taskID uint) error {
	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.deleteSubtree(ctx, taskID); err != nil {
		return err
	}
	return s.progress.Cascade(ctx, task.ParentTaskID, task.ProjectID)
}

// deleteSubtree removes a task and all of its descendants post-order:
// children first, then the node itself. Recursion depth is bounded by
// the tree depth.
func (s *Task) deleteSubtree(ctx context.Context, taskID uint) error {
	children, err := s.repo.ListByParent(ctx, taskID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, child.ID); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, taskID)
}
