package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
)

// ServiceTestSuite provides a base test suite for service tests backed
// by an in-memory database.
type ServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	taskRepo    *repos.TaskRepository
	projectRepo *repos.ProjectRepository

	progressService *Progress
	taskService     *Task
	projectService  *Project
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Category{}, &models.Project{}, &models.Task{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.taskRepo = repos.NewTaskRepository(db)
	s.projectRepo = repos.NewProjectRepository(db)

	s.progressService = NewProgressService(s.taskRepo, s.projectRepo)
	s.taskService = NewTaskService(s.taskRepo, s.progressService)
	s.projectService = NewProjectService(s.projectRepo, s.taskRepo)
	s.ctx = context.Background()
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *ServiceTestSuite) createProject(name string) *models.Project {
	project := &models.Project{Name: name}
	s.Require().NoError(s.projectRepo.Create(s.ctx, project))
	return project
}

// createTask inserts directly through the repository, skipping the
// cascade, so tests control exactly when aggregates are recomputed.
func (s *ServiceTestSuite) createTask(projectID uint, parentID *uint, percent int) *models.Task {
	task := &models.Task{
		ProjectID:       projectID,
		ParentTaskID:    parentID,
		Name:            "task",
		PercentComplete: percent,
	}
	s.Require().NoError(s.taskRepo.Create(s.ctx, task))
	return task
}

func (s *ServiceTestSuite) getTask(id uint) *models.Task {
	task, err := s.taskRepo.Get(s.ctx, id)
	s.Require().NoError(err)
	return task
}

func (s *ServiceTestSuite) getProject(id uint) *models.Project {
	project, err := s.projectRepo.Get(s.ctx, id)
	s.Require().NoError(err)
	return project
}

func TestServices(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
