package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/services"
)

const systemInstruction = `You are the assistant of a project and task tracker.
The user organizes work into categories, projects and hierarchical tasks with
percent-complete values. Interpret the user's message and respond with a single
JSON object of the form:

{"actions": [...], "responseMessage": "text shown to the user"}

Each action is one of:
  {"type": "create_project", "name": "...", "description": "...", "categoryId": "..."}
  {"type": "create_task", "projectId": "...", "name": "...", "description": "...", "parentTaskId": "..."}
  {"type": "update_task", "taskId": "...", "percentComplete": 0-100, "isCompleted": true/false, "roadblocks": "..."}
  {"type": "update_project", "projectId": "...", "percentComplete": 0-100, "roadblocks": "..."}

Actions are applied in order. When a task belongs to a project you are creating
in the same response, use the placeholder "NEW_PROJECT" as its projectId.
If the user is only chatting, return an empty actions array. Below is the
current state of the workspace:

`

// workspaceSnapshot is the JSON view of current state given to the model
type workspaceSnapshot struct {
	Categories []models.Category `json:"categories"`
	Projects   []projectSnapshot `json:"projects"`
}

type projectSnapshot struct {
	models.Project
	TaskTree []*services.TaskNode `json:"taskTree"`
}

// BuildSystemPrompt assembles the system instruction plus a JSON snapshot
// of every project's task forest, the data the model needs to reference
// existing entities by id.
func BuildSystemPrompt(ctx context.Context, projects *services.Project, tasks *services.Task, categories []models.Category) (string, error) {
	all, err := projects.List(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list projects: %w", err)
	}

	snapshot := workspaceSnapshot{Categories: categories}
	for _, project := range all {
		tree, err := tasks.Tree(ctx, project.ID)
		if err != nil {
			return "", fmt.Errorf("failed to build task tree for project %d: %w", project.ID, err)
		}
		snapshot.Projects = append(snapshot.Projects, projectSnapshot{Project: project, TaskTree: tree})
	}

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode workspace snapshot: %w", err)
	}
	return systemInstruction + string(encoded), nil
}
