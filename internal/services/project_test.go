package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/stackplan/stackplan/internal/db/models"
)

type ProjectServiceTestSuite struct {
	ServiceTestSuite
}

func (s *ProjectServiceTestSuite) TestUpdateDoesNotRecalc() {
	project := s.createProject("p")
	s.createTask(project.ID, nil, 100)
	s.createTask(project.ID, nil, 0)

	// A direct project update is an explicit override, the stored value
	// is kept as-is until the next task mutation recomputes it.
	err := s.projectService.Update(s.ctx, project.ID, map[string]interface{}{
		models.ProjectPercentCompleteField: 10,
	})
	s.Require().NoError(err)
	s.Require().Equal(10, s.getProject(project.ID).PercentComplete)
}

func (s *ProjectServiceTestSuite) TestDeleteRemovesTasks() {
	project := s.createProject("p")
	root := s.createTask(project.ID, nil, 0)
	s.createTask(project.ID, &root.ID, 0)

	s.Require().NoError(s.projectService.Delete(s.ctx, project.ID))

	_, err := s.projectRepo.Get(s.ctx, project.ID)
	s.Require().Error(err)

	tasks, err := s.taskRepo.ListByProject(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Empty(tasks)
}

func TestProjectService(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
