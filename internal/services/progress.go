package services

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
	"github.com/stackplan/stackplan/internal/logger"
)

// Progress keeps the derived percent-complete values consistent across
// the task tree and its project. Both entry points are idempotent and
// no-op silently on ids that no longer exist, since they are routinely
// invoked after deletions.
type Progress struct {
	tasks    *repos.TaskRepository
	projects *repos.ProjectRepository
}

// NewProgressService creates a new instance of Progress
func NewProgressService(tasks *repos.TaskRepository, projects *repos.ProjectRepository) *Progress {
	return &Progress{
		tasks:    tasks,
		projects: projects,
	}
}

// RecalcProject recomputes a project's percent complete as the rounded
// mean of its root tasks and persists it unconditionally. A project with
// no root tasks is reset to 0.
func (s *Progress) RecalcProject(ctx context.Context, projectID uint) error {
	roots, err := s.tasks.ListRoots(ctx, projectID)
	if err != nil {
		return err
	}

	percent := 0
	if len(roots) > 0 {
		sum := 0
		for _, task := range roots {
			sum += task.PercentComplete
		}
		percent = roundMean(sum, len(roots))
	}

	return s.projects.Update(ctx, projectID, map[string]interface{}{
		models.ProjectPercentCompleteField: percent,
	})
}

// RecalcParent recomputes a parent task's aggregate from its direct
// children and cascades upward to the root task. A childless task is
// left untouched: its percent complete is leaf-authoritative. A child
// average of 0 does not force the status back to pending, so a manually
// set status survives.
func (s *Progress) RecalcParent(ctx context.Context, taskID uint) error {
	task, err := s.tasks.Get(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	children, err := s.tasks.ListByParent(ctx, taskID)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}

	sum := 0
	for _, child := range children {
		sum += child.PercentComplete
	}
	avg := roundMean(sum, len(children))

	fields := map[string]interface{}{
		models.TaskPercentCompleteField: avg,
		models.TaskIsCompletedField:     avg == 100,
	}
	switch {
	case avg == 100:
		fields[models.TaskStatusField] = models.TaskStatusCompleted
	case avg > 0:
		fields[models.TaskStatusField] = models.TaskStatusInProgress
	}

	if err := s.tasks.Update(ctx, taskID, fields); err != nil {
		return err
	}

	if task.ParentTaskID != nil {
		return s.RecalcParent(ctx, *task.ParentTaskID)
	}
	return nil
}

// Cascade applies the dual-call discipline required after any task
// mutation: recompute the former/current parent chain, then the
// project-level aggregate. RecalcParent stops at the root task, so the
// project call is always made separately.
func (s *Progress) Cascade(ctx context.Context, parentTaskID *uint, projectID uint) error {
	if parentTaskID != nil {
		if err := s.RecalcParent(ctx, *parentTaskID); err != nil {
			logger.Warnf("parent recalc for task %d failed: %v", *parentTaskID, err)
		}
	}
	return s.RecalcProject(ctx, projectID)
}

// roundMean returns round(sum/count) with halves rounded away from zero.
func roundMean(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
