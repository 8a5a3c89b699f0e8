package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/logger"
	"github.com/stackplan/stackplan/internal/services"
)

// Interpreter validates and executes action batches against the store
// through the same services the HTTP handlers use.
type Interpreter struct {
	projects *services.Project
	tasks    *services.Task
	progress *services.Progress
}

// NewInterpreter creates a new instance of Interpreter
func NewInterpreter(projects *services.Project, tasks *services.Task, progress *services.Progress) *Interpreter {
	return &Interpreter{
		projects: projects,
		tasks:    tasks,
		progress: progress,
	}
}

// BatchResult is the outcome of executing one action batch.
type BatchResult struct {
	// Log holds one human-readable line per successfully executed action
	Log []string
	// NewProjectID is the id of the most recent project created in the
	// batch, if any
	NewProjectID *uint
}

// Execute applies the actions strictly in order. Each action is
// individually recovered: a failure is logged and skipped, never aborts
// the batch, and nothing is rolled back. Partial progress is the
// intended behavior for a best-effort conversational agent.
func (i *Interpreter) Execute(ctx context.Context, actions []Action, categories []models.Category) BatchResult {
	var result BatchResult

	for idx, action := range actions {
		entry, err := i.apply(ctx, action, categories, &result.NewProjectID)
		if err != nil {
			logger.WarnWithFields("assistant action skipped", map[string]interface{}{
				"index": idx,
				"type":  string(action.Type),
				"error": err.Error(),
			})
			continue
		}
		result.Log = append(result.Log, entry)
	}
	return result
}

func (i *Interpreter) apply(ctx context.Context, action Action, categories []models.Category, lastProjectID **uint) (string, error) {
	switch action.Type {
	case ActionCreateProject:
		return i.createProject(ctx, action, categories, lastProjectID)
	case ActionCreateTask:
		return i.createTask(ctx, action, *lastProjectID)
	case ActionUpdateTask:
		return i.updateTask(ctx, action)
	case ActionUpdateProject:
		return i.updateProject(ctx, action)
	default:
		return "", fmt.Errorf("unknown action type %q", action.Type)
	}
}

func (i *Interpreter) createProject(ctx context.Context, action Action, categories []models.Category, lastProjectID **uint) (string, error) {
	if action.Name == "" {
		return "", fmt.Errorf("create_project requires a name")
	}

	project := models.Project{
		Name:        action.Name,
		Description: action.Description,
		CategoryID:  resolveCategory(action.CategoryID, categories),
		Status:      models.ProjectStatusActive,
	}
	if err := i.projects.Create(ctx, &project); err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}

	id := project.ID
	*lastProjectID = &id
	return fmt.Sprintf("Created project %q", project.Name), nil
}

func (i *Interpreter) createTask(ctx context.Context, action Action, lastProjectID *uint) (string, error) {
	if action.Name == "" {
		return "", fmt.Errorf("create_task requires a name")
	}

	var projectID uint
	if action.ProjectID.IsNewProject() {
		if lastProjectID == nil {
			return "", fmt.Errorf("NEW_PROJECT referenced but no project was created in this batch")
		}
		projectID = *lastProjectID
	} else {
		id, err := action.ProjectID.UintID()
		if err != nil {
			return "", err
		}
		if _, err := i.projects.Get(ctx, id); err != nil {
			return "", fmt.Errorf("project %d not found: %w", id, err)
		}
		projectID = id
	}

	var parentTaskID *uint
	if !action.ParentTaskID.IsZero() {
		id, err := action.ParentTaskID.UintID()
		if err != nil {
			return "", err
		}
		parent, err := i.tasks.Get(ctx, id)
		if err != nil {
			return "", fmt.Errorf("parent task %d not found: %w", id, err)
		}
		if parent.ProjectID != projectID {
			return "", fmt.Errorf("parent task %d belongs to a different project", id)
		}
		parentTaskID = &id
	}

	task := models.Task{
		ProjectID:    projectID,
		ParentTaskID: parentTaskID,
		Name:         action.Name,
		Description:  action.Description,
		Status:       models.TaskStatusPending,
	}
	if err := i.tasks.Create(ctx, &task); err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return fmt.Sprintf("Created task %q", task.Name), nil
}

func (i *Interpreter) updateTask(ctx context.Context, action Action) (string, error) {
	id, err := action.TaskID.UintID()
	if err != nil {
		return "", err
	}
	task, err := i.tasks.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("task %d not found: %w", id, err)
	}

	fields := map[string]interface{}{}
	if action.PercentComplete != nil {
		percent := clampPercent(*action.PercentComplete)
		fields[models.TaskPercentCompleteField] = percent
		fields[models.TaskIsCompletedField] = percent == 100
		// A zero percent does not force the status back to pending; a
		// manually set status survives.
		if percent > 0 {
			fields[models.TaskStatusField] = models.StatusForPercent(percent)
		}
	}
	if action.IsCompleted != nil {
		fields[models.TaskIsCompletedField] = *action.IsCompleted
		if *action.IsCompleted && action.PercentComplete == nil {
			fields[models.TaskPercentCompleteField] = 100
		}
	}
	if action.Roadblocks.Set {
		fields[models.TaskRoadblocksField] = action.Roadblocks.Value
	}

	if err := i.tasks.Update(ctx, id, fields); err != nil {
		return "", fmt.Errorf("failed to update task: %w", err)
	}
	return fmt.Sprintf("Updated task %q", task.Name), nil
}

func (i *Interpreter) updateProject(ctx context.Context, action Action) (string, error) {
	id, err := action.ProjectID.UintID()
	if err != nil {
		return "", err
	}
	project, err := i.projects.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("project %d not found: %w", id, err)
	}

	fields := map[string]interface{}{}
	if action.PercentComplete != nil {
		// Deliberate escape hatch: a direct project write bypasses the
		// aggregator so the agent can assert an analysis-derived value.
		fields[models.ProjectPercentCompleteField] = clampPercent(*action.PercentComplete)
	}
	if action.Roadblocks.Set {
		fields[models.ProjectRoadblocksField] = action.Roadblocks.Value
	}

	if len(fields) > 0 {
		if err := i.projects.Update(ctx, id, fields); err != nil {
			return "", fmt.Errorf("failed to update project: %w", err)
		}
	}
	return fmt.Sprintf("Updated project %q", project.Name), nil
}

// resolveCategory picks the category for a new project: a matching id
// wins, then a case-insensitive name match, then the first category in
// storage order. With no categories at all the project stays uncategorized.
func resolveCategory(ref EntityRef, categories []models.Category) *uint {
	if len(categories) == 0 {
		return nil
	}
	if !ref.IsZero() {
		if id, err := ref.UintID(); err == nil {
			for idx := range categories {
				if categories[idx].ID == id {
					return &categories[idx].ID
				}
			}
		}
		for idx := range categories {
			if strings.EqualFold(categories[idx].Name, string(ref)) {
				return &categories[idx].ID
			}
		}
	}
	return &categories[0].ID
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
