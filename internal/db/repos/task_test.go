package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/stackplan/stackplan/internal/db/models"
)

type TaskRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func (s *TaskRepositoryTestSuite) TestCreateTask() {
	project := s.createTestProject()

	task := &models.Task{
		ProjectID:   project.ID,
		Name:        "write integration tests",
		Description: "cover the task endpoints",
		SortOrder:   2,
	}
	err := s.taskRepo.Create(s.ctx, task)
	s.Require().NoError(err)
	s.Require().NotZero(task.ID)

	// Defaults set by the BeforeCreate hook
	created, err := s.taskRepo.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Equal(task.Name, created.Name)
	s.Require().Equal(project.ID, created.ProjectID)
	s.Require().Equal(models.TaskStatusPending, created.Status)
	s.Require().Equal(0, created.PercentComplete)
	s.Require().False(created.IsCompleted)
	s.Require().Nil(created.ParentTaskID)
}

func (s *TaskRepositoryTestSuite) TestGetTask() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID, nil)

	retrieved, err := s.taskRepo.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Equal(task.ID, retrieved.ID)
	s.Require().Equal(task.Name, retrieved.Name)

	_, err = s.taskRepo.Get(s.ctx, 999)
	s.Require().Error(err)
}

func (s *TaskRepositoryTestSuite) TestListByProject() {
	project := s.createTestProject()
	other := s.createTestProject()

	for i := 0; i < 3; i++ {
		s.createTestTask(project.ID, nil)
	}
	s.createTestTask(other.ID, nil)

	tasks, err := s.taskRepo.ListByProject(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 3)
	for _, task := range tasks {
		s.Require().Equal(project.ID, task.ProjectID)
	}

	empty, err := s.taskRepo.ListByProject(s.ctx, 999)
	s.Require().NoError(err)
	s.Require().Empty(empty)
}

func (s *TaskRepositoryTestSuite) TestListRootsAndByParent() {
	project := s.createTestProject()

	root1 := s.createTestTask(project.ID, nil)
	root2 := s.createTestTask(project.ID, nil)
	child1 := s.createTestTask(project.ID, &root1.ID)
	child2 := s.createTestTask(project.ID, &root1.ID)

	roots, err := s.taskRepo.ListRoots(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Len(roots, 2)
	for _, root := range roots {
		s.Require().Nil(root.ParentTaskID)
	}

	children, err := s.taskRepo.ListByParent(s.ctx, root1.ID)
	s.Require().NoError(err)
	s.Require().Len(children, 2)
	ids := []uint{children[0].ID, children[1].ID}
	s.Require().ElementsMatch([]uint{child1.ID, child2.ID}, ids)

	none, err := s.taskRepo.ListByParent(s.ctx, root2.ID)
	s.Require().NoError(err)
	s.Require().Empty(none)
}

func (s *TaskRepositoryTestSuite) TestUpdateTask() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID, nil)

	err := s.taskRepo.Update(s.ctx, task.ID, map[string]interface{}{
		models.TaskPercentCompleteField: 100,
		models.TaskIsCompletedField:     true,
		models.TaskStatusField:          models.TaskStatusCompleted,
	})
	s.Require().NoError(err)

	updated, err := s.taskRepo.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Equal(100, updated.PercentComplete)
	s.Require().True(updated.IsCompleted)
	s.Require().Equal(models.TaskStatusCompleted, updated.Status)

	// Updating a non-existent task is a no-op, not an error
	err = s.taskRepo.Update(s.ctx, 999, map[string]interface{}{
		models.TaskPercentCompleteField: 10,
	})
	s.Require().NoError(err)
}

func (s *TaskRepositoryTestSuite) TestDeleteTask() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID, nil)

	err := s.taskRepo.Delete(s.ctx, task.ID)
	s.Require().NoError(err)

	_, err = s.taskRepo.Get(s.ctx, task.ID)
	s.Require().Error(err)
}

func (s *TaskRepositoryTestSuite) TestDeleteByProject() {
	project := s.createTestProject()
	root := s.createTestTask(project.ID, nil)
	s.createTestTask(project.ID, &root.ID)
	s.createTestTask(project.ID, nil)

	err := s.taskRepo.DeleteByProject(s.ctx, project.ID)
	s.Require().NoError(err)

	remaining, err := s.taskRepo.ListByProject(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Empty(remaining)
}

func TestTaskRepository(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
