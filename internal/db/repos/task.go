package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/stackplan/stackplan/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Get retrieves a task by ID from the database
func (r *TaskRepository) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject retrieves all tasks for a specific project from the database
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where(models.Task{ProjectID: projectID}).
		Order("id asc").Find(&tasks).Error
	return tasks, err
}

// ListByParent retrieves the direct children of a task from the database
func (r *TaskRepository) ListByParent(ctx context.Context, parentTaskID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("parent_task_id = ?", parentTaskID).
		Order("id asc").Find(&tasks).Error
	return tasks, err
}

// ListRoots retrieves the root tasks (no parent) of a project from the database
func (r *TaskRepository) ListRoots(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND parent_task_id IS NULL", projectID).
		Order("id asc").Find(&tasks).Error
	return tasks, err
}

// Update applies a partial update to a task. Fields are given as a
// column map so zero values and NULLs are written as-is.
func (r *TaskRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).Updates(fields).Error
}

// Delete deletes a task by ID from the database
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

// DeleteByProject deletes every task belonging to a project
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).
		Delete(&models.Task{}).Error
}
