package services

import (
	"context"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
)

// Category handles category-related operations
type Category struct {
	repo *repos.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(repo *repos.CategoryRepository) *Category {
	return &Category{
		repo: repo,
	}
}

// Create creates a new category
func (s *Category) Create(ctx context.Context, category *models.Category) error {
	return s.repo.Create(ctx, category)
}

// Get retrieves a category by ID
func (s *Category) Get(ctx context.Context, categoryID uint) (*models.Category, error) {
	return s.repo.Get(ctx, categoryID)
}

// List retrieves all categories in storage order
func (s *Category) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// Delete deletes a category by ID
func (s *Category) Delete(ctx context.Context, categoryID uint) error {
	return s.repo.Delete(ctx, categoryID)
}
