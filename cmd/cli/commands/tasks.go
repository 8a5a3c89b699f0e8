package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackplan/stackplan/internal/db/models"
)

// Task flag names
const (
	flagProjectID    = "project-id"
	flagParentTaskID = "parent-task-id"
	flagPercent      = "percent"
)

// GetTasksCmd returns the tasks command group
func GetTasksCmd() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := cmd.Flags().GetString(flagName)
			if err != nil {
				return fmt.Errorf("error getting name flag: %w", err)
			}
			description, err := cmd.Flags().GetString(flagDescription)
			if err != nil {
				return fmt.Errorf("error getting description flag: %w", err)
			}
			projectID, err := cmd.Flags().GetUint(flagProjectID)
			if err != nil {
				return fmt.Errorf("error getting project-id flag: %w", err)
			}
			parentTaskID, err := cmd.Flags().GetUint(flagParentTaskID)
			if err != nil {
				return fmt.Errorf("error getting parent-task-id flag: %w", err)
			}

			task := models.Task{
				ProjectID:   projectID,
				Name:        name,
				Description: description,
			}
			if parentTaskID > 0 {
				task.ParentTaskID = &parentTaskID
			}

			created, err := apiClient.CreateTask(cmd.Context(), task)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			return printJSON(created)
		},
	}
	createCmd.Flags().StringP(flagName, "n", "", "Task name")
	createCmd.Flags().StringP(flagDescription, "d", "", "Task description")
	createCmd.Flags().Uint(flagProjectID, 0, "Project ID")
	createCmd.Flags().Uint(flagParentTaskID, 0, "Parent task ID (omit for a root task)")
	if err := createCmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for create task command: %w", err))
	}
	if err := createCmd.MarkFlagRequired(flagProjectID); err != nil {
		panic(fmt.Errorf("failed to mark project-id flag as required for create task command: %w", err))
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := cmd.Flags().GetUint(flagProjectID)
			if err != nil {
				return fmt.Errorf("error getting project-id flag: %w", err)
			}
			tasks, err := apiClient.ListProjectTasks(cmd.Context(), projectID)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			return printJSON(tasks)
		},
	}
	listCmd.Flags().Uint(flagProjectID, 0, "Project ID")
	if err := listCmd.MarkFlagRequired(flagProjectID); err != nil {
		panic(fmt.Errorf("failed to mark project-id flag as required for list tasks command: %w", err))
	}

	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Set a task's percent complete",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetUint(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			percent, err := cmd.Flags().GetInt(flagPercent)
			if err != nil {
				return fmt.Errorf("error getting percent flag: %w", err)
			}
			task, err := apiClient.UpdateTask(cmd.Context(), id, map[string]interface{}{
				"percentComplete": percent,
			})
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			return printJSON(task)
		},
	}
	progressCmd.Flags().Uint(flagID, 0, "Task ID")
	progressCmd.Flags().Int(flagPercent, 0, "Percent complete (0-100)")
	if err := progressCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for task progress command: %w", err))
	}
	if err := progressCmd.MarkFlagRequired(flagPercent); err != nil {
		panic(fmt.Errorf("failed to mark percent flag as required for task progress command: %w", err))
	}

	doneCmd := &cobra.Command{
		Use:   "done",
		Short: "Mark a task as completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetUint(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			task, err := apiClient.UpdateTask(cmd.Context(), id, map[string]interface{}{
				"isCompleted": true,
			})
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			return printJSON(task)
		},
	}
	doneCmd.Flags().Uint(flagID, 0, "Task ID")
	if err := doneCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for task done command: %w", err))
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task and its whole subtree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetUint(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			if err := apiClient.DeleteTask(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			fmt.Printf("Deleted task %d\n", id)
			return nil
		},
	}
	deleteCmd.Flags().Uint(flagID, 0, "Task ID")
	if err := deleteCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for delete task command: %w", err))
	}

	tasksCmd.AddCommand(createCmd, listCmd, progressCmd, doneCmd, deleteCmd)
	return tasksCmd
}
