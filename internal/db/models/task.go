package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for task model
const (
	// TaskPercentCompleteField is the field name for task percent complete
	TaskPercentCompleteField = "percent_complete"
	// TaskIsCompletedField is the field name for the task completion flag
	TaskIsCompletedField = "is_completed"
	// TaskStatusField is the field name for task status
	TaskStatusField = "status"
	// TaskRoadblocksField is the field name for task roadblocks
	TaskRoadblocksField = "roadblocks"
)

// TaskStatus represents the current state of a task. The column is kept
// free-form: aggregation preserves values outside the known set instead
// of clobbering them.
type TaskStatus string

// Task status constants
const (
	// TaskStatusPending indicates no work has started on the task
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusInProgress indicates the task is being worked on
	TaskStatusInProgress TaskStatus = "in-progress"
	// TaskStatusCompleted indicates the task is done
	TaskStatusCompleted TaskStatus = "completed"
)

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a string to a TaskStatus type
func ParseTaskStatus(str string) (TaskStatus, error) {
	switch str {
	case string(TaskStatusPending):
		return TaskStatusPending, nil
	case string(TaskStatusInProgress):
		return TaskStatusInProgress, nil
	case string(TaskStatusCompleted):
		return TaskStatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid task status: %s", str)
	}
}

// StatusForPercent derives the task status implied by a percent-complete
// value: 100 is completed, anything above zero is in progress.
func StatusForPercent(percent int) TaskStatus {
	switch {
	case percent >= 100:
		return TaskStatusCompleted
	case percent > 0:
		return TaskStatusInProgress
	default:
		return TaskStatusPending
	}
}

// Task is a node in a project's task forest. ParentTaskID is a nullable
// self-reference: root tasks have none. For a task with children,
// PercentComplete is the rounded mean of the children and must not be
// set directly; leaf tasks are the only externally authoritative ones.
type Task struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ProjectID       uint           `json:"projectId" gorm:"not null;index"`
	ParentTaskID    *uint          `json:"parentTaskId" gorm:"index"`
	Name            string         `json:"name" gorm:"not null;index"`
	Description     string         `json:"description" gorm:"type:text"`
	PercentComplete int            `json:"percentComplete" gorm:"not null;default:0"`
	IsCompleted     bool           `json:"isCompleted" gorm:"not null;default:false"`
	Status          TaskStatus     `json:"status" gorm:"not null;index"`
	Roadblocks      string         `json:"roadblocks" gorm:"type:text"`
	AISuggestions   string         `json:"aiSuggestions" gorm:"type:text"`
	SortOrder       int            `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt       time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.ProjectID == 0 {
		return fmt.Errorf("task must belong to a project")
	}
	if t.PercentComplete < 0 || t.PercentComplete > 100 {
		return fmt.Errorf("task percent complete must be between 0 and 100")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return t.Validate()
}
