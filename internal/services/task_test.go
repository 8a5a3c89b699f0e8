package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/stackplan/stackplan/internal/db/models"
)

type TaskServiceTestSuite struct {
	ServiceTestSuite
}

func (s *TaskServiceTestSuite) TestCreateCascades() {
	project := s.createProject("p")
	done := s.createTask(project.ID, nil, 100)
	s.Require().NoError(s.progressService.RecalcProject(s.ctx, project.ID))
	s.Require().Equal(100, s.getProject(project.ID).PercentComplete)

	// A fresh sibling pulls the project average back down
	task := &models.Task{ProjectID: project.ID, Name: "new root task"}
	s.Require().NoError(s.taskService.Create(s.ctx, task))
	s.Require().NotZero(task.ID)
	s.Require().Equal(50, s.getProject(project.ID).PercentComplete)

	// A new child under a completed leaf drags the parent down too
	child := &models.Task{ProjectID: project.ID, ParentTaskID: &done.ID, Name: "subtask"}
	s.Require().NoError(s.taskService.Create(s.ctx, child))
	s.Require().Equal(0, s.getTask(done.ID).PercentComplete)
	s.Require().Equal(0, s.getProject(project.ID).PercentComplete)
}

func (s *TaskServiceTestSuite) TestUpdateCascades() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	child := s.createTask(project.ID, &parent.ID, 0)
	s.createTask(project.ID, &parent.ID, 0)

	err := s.taskService.Update(s.ctx, child.ID, map[string]interface{}{
		models.TaskPercentCompleteField: 100,
		models.TaskIsCompletedField:     true,
		models.TaskStatusField:          models.TaskStatusCompleted,
	})
	s.Require().NoError(err)

	s.Require().Equal(50, s.getTask(parent.ID).PercentComplete)
	s.Require().Equal(50, s.getProject(project.ID).PercentComplete)
}

func (s *TaskServiceTestSuite) TestUpdateMissingTask() {
	err := s.taskService.Update(s.ctx, 999, map[string]interface{}{
		models.TaskPercentCompleteField: 10,
	})
	s.Require().Error(err)
}

func (s *TaskServiceTestSuite) TestDeleteRemovesSubtree() {
	project := s.createProject("p")
	keep := s.createTask(project.ID, nil, 100)
	root := s.createTask(project.ID, nil, 0)
	mid := s.createTask(project.ID, &root.ID, 0)
	leaf := s.createTask(project.ID, &mid.ID, 0)
	sibling := s.createTask(project.ID, &root.ID, 0)

	s.Require().NoError(s.taskService.Delete(s.ctx, root.ID))

	for _, id := range []uint{root.ID, mid.ID, leaf.ID, sibling.ID} {
		_, err := s.taskRepo.Get(s.ctx, id)
		s.Require().Error(err, "task %d should have been deleted", id)
	}

	// The surviving root is now the only contributor
	s.Require().Equal(100, s.getProject(project.ID).PercentComplete)
	_, err := s.taskRepo.Get(s.ctx, keep.ID)
	s.Require().NoError(err)
}

func (s *TaskServiceTestSuite) TestDeleteChildRecalcsParent() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	s.createTask(project.ID, &parent.ID, 100)
	zero := s.createTask(project.ID, &parent.ID, 0)
	s.Require().NoError(s.progressService.RecalcParent(s.ctx, parent.ID))
	s.Require().Equal(50, s.getTask(parent.ID).PercentComplete)

	s.Require().NoError(s.taskService.Delete(s.ctx, zero.ID))

	updated := s.getTask(parent.ID)
	s.Require().Equal(100, updated.PercentComplete)
	s.Require().True(updated.IsCompleted)
	s.Require().Equal(100, s.getProject(project.ID).PercentComplete)
}

func (s *TaskServiceTestSuite) TestTree() {
	project := s.createProject("p")
	root := s.createTask(project.ID, nil, 0)
	s.createTask(project.ID, &root.ID, 0)
	s.createTask(project.ID, &root.ID, 0)

	tree, err := s.taskService.Tree(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Len(tree, 1)
	s.Require().Equal(root.ID, tree[0].ID)
	s.Require().Len(tree[0].Children, 2)
}

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
