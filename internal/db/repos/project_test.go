package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/stackplan/stackplan/internal/db/models"
)

type ProjectRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func (s *ProjectRepositoryTestSuite) TestCreateProject() {
	category := s.createTestCategory()

	project := &models.Project{
		Name:        "Website redesign",
		Description: "Refresh the marketing site",
		CategoryID:  &category.ID,
	}
	err := s.projectRepo.Create(s.ctx, project)
	s.Require().NoError(err)
	s.Require().NotZero(project.ID)

	created, err := s.projectRepo.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal(project.Name, created.Name)
	s.Require().Equal(models.ProjectStatusActive, created.Status)
	s.Require().Equal(0, created.PercentComplete)
	s.Require().NotNil(created.CategoryID)
	s.Require().Equal(category.ID, *created.CategoryID)
}

func (s *ProjectRepositoryTestSuite) TestGetProject() {
	project := s.createTestProject()

	retrieved, err := s.projectRepo.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal(project.ID, retrieved.ID)

	_, err = s.projectRepo.Get(s.ctx, 999)
	s.Require().Error(err)
}

func (s *ProjectRepositoryTestSuite) TestListProjects() {
	for i := 0; i < 3; i++ {
		s.createTestProject()
	}

	projects, err := s.projectRepo.List(s.ctx, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(projects, 3)

	// nil options fall back to the default limit
	projects, err = s.projectRepo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(projects, 3)

	// pagination
	page, err := s.projectRepo.List(s.ctx, &models.ListOptions{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
}

func (s *ProjectRepositoryTestSuite) TestUpdateProject() {
	project := s.createTestProject()

	err := s.projectRepo.Update(s.ctx, project.ID, map[string]interface{}{
		models.ProjectPercentCompleteField: 75,
		models.ProjectRoadblocksField:      "waiting on design review",
	})
	s.Require().NoError(err)

	updated, err := s.projectRepo.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal(75, updated.PercentComplete)
	s.Require().Equal("waiting on design review", updated.Roadblocks)
}

func (s *ProjectRepositoryTestSuite) TestDeleteProject() {
	project := s.createTestProject()

	err := s.projectRepo.Delete(s.ctx, project.ID)
	s.Require().NoError(err)

	_, err = s.projectRepo.Get(s.ctx, project.ID)
	s.Require().Error(err)
}

func TestProjectRepository(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
