package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/stackplan/stackplan/internal/db/models"
)

type ProgressTestSuite struct {
	ServiceTestSuite
}

func (s *ProgressTestSuite) TestRecalcParentAveragesChildren() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	childDone := s.createTask(project.ID, &parent.ID, 100)
	s.createTask(project.ID, &parent.ID, 50)

	s.Require().NoError(s.progressService.RecalcParent(s.ctx, parent.ID))

	updated := s.getTask(parent.ID)
	s.Require().Equal(75, updated.PercentComplete)
	s.Require().False(updated.IsCompleted)
	s.Require().Equal(models.TaskStatusInProgress, updated.Status)

	// Leaves are authoritative, recalc must not touch them
	s.Require().NoError(s.progressService.RecalcParent(s.ctx, childDone.ID))
	s.Require().Equal(100, s.getTask(childDone.ID).PercentComplete)
}

func (s *ProgressTestSuite) TestRecalcParentCompletes() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	s.createTask(project.ID, &parent.ID, 100)
	s.createTask(project.ID, &parent.ID, 100)

	s.Require().NoError(s.progressService.RecalcParent(s.ctx, parent.ID))

	updated := s.getTask(parent.ID)
	s.Require().Equal(100, updated.PercentComplete)
	s.Require().True(updated.IsCompleted)
	s.Require().Equal(models.TaskStatusCompleted, updated.Status)
}

func (s *ProgressTestSuite) TestRecalcParentPreservesStatusAtZero() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	s.Require().NoError(s.taskRepo.Update(s.ctx, parent.ID, map[string]interface{}{
		models.TaskStatusField: models.TaskStatusInProgress,
	}))
	s.createTask(project.ID, &parent.ID, 0)
	s.createTask(project.ID, &parent.ID, 0)

	s.Require().NoError(s.progressService.RecalcParent(s.ctx, parent.ID))

	updated := s.getTask(parent.ID)
	s.Require().Equal(0, updated.PercentComplete)
	s.Require().False(updated.IsCompleted)
	// A zero average keeps whatever status was set before
	s.Require().Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *ProgressTestSuite) TestRecalcParentCascadesUpward() {
	project := s.createProject("p")
	root := s.createTask(project.ID, nil, 0)
	mid := s.createTask(project.ID, &root.ID, 0)
	s.createTask(project.ID, &mid.ID, 100)
	s.createTask(project.ID, &mid.ID, 0)

	s.Require().NoError(s.progressService.RecalcParent(s.ctx, mid.ID))

	s.Require().Equal(50, s.getTask(mid.ID).PercentComplete)
	s.Require().Equal(50, s.getTask(root.ID).PercentComplete)
}

func (s *ProgressTestSuite) TestRecalcParentRoundsHalfAwayFromZero() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	// 100+25+50+75+63 = 313, /5 = 62.6 -> 63; use 100+25 = 125, /2 = 62.5 -> 63
	s.createTask(project.ID, &parent.ID, 100)
	s.createTask(project.ID, &parent.ID, 25)

	s.Require().NoError(s.progressService.RecalcParent(s.ctx, parent.ID))
	s.Require().Equal(63, s.getTask(parent.ID).PercentComplete)
}

func (s *ProgressTestSuite) TestRecalcParentMissingTaskIsNoOp() {
	s.Require().NoError(s.progressService.RecalcParent(s.ctx, 999))
}

func (s *ProgressTestSuite) TestRecalcProject() {
	project := s.createProject("p")
	s.createTask(project.ID, nil, 100)
	root := s.createTask(project.ID, nil, 0)
	// Non-root tasks never enter the project average
	s.createTask(project.ID, &root.ID, 100)

	s.Require().NoError(s.progressService.RecalcProject(s.ctx, project.ID))
	s.Require().Equal(50, s.getProject(project.ID).PercentComplete)
}

func (s *ProgressTestSuite) TestRecalcProjectWithNoTasksResetsToZero() {
	project := s.createProject("p")
	s.Require().NoError(s.projectRepo.Update(s.ctx, project.ID, map[string]interface{}{
		models.ProjectPercentCompleteField: 40,
	}))

	s.Require().NoError(s.progressService.RecalcProject(s.ctx, project.ID))
	s.Require().Equal(0, s.getProject(project.ID).PercentComplete)
}

func (s *ProgressTestSuite) TestCascade() {
	project := s.createProject("p")
	parent := s.createTask(project.ID, nil, 0)
	s.createTask(project.ID, &parent.ID, 100)

	s.Require().NoError(s.progressService.Cascade(s.ctx, &parent.ID, project.ID))

	s.Require().Equal(100, s.getTask(parent.ID).PercentComplete)
	s.Require().Equal(100, s.getProject(project.ID).PercentComplete)
}

func (s *ProgressTestSuite) TestRoundMean() {
	s.Require().Equal(63, roundMean(125, 2))
	s.Require().Equal(33, roundMean(100, 3))
	s.Require().Equal(67, roundMean(200, 3))
	s.Require().Equal(0, roundMean(0, 4))
	s.Require().Equal(100, roundMean(300, 3))
}

func TestProgress(t *testing.T) {
	suite.Run(t, new(ProgressTestSuite))
}
