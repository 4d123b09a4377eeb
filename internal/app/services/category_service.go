package services

import (
	"context"
	"strings"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type categoryStore interface {
	categoryGetter
	GetAll(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	IsReferenced(ctx context.Context, id int64) (bool, error)
}

// CategoryService handles the category catalogue
type CategoryService struct {
	categories categoryStore
}

// NewCategoryService creates a new category service
func NewCategoryService(categories categoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// GetAllCategories returns the category catalogue ordered by name
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.GetAll(ctx)
}

// GetCategoryByID returns one category
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// CreateCategory creates a catalogue entry
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return apperrors.NewValidationError("category name cannot be empty")
	}
	return s.categories.Create(ctx, category)
}

// UpdateCategory replaces the fields of a catalogue entry
func (s *CategoryService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return apperrors.NewValidationError("category name cannot be empty")
	}
	return s.categories.Update(ctx, category)
}

// DeleteCategory removes a category unless a need membership or pupil
// assignment still references it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.categories.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewCustomError(apperrors.ErrCategoryHasRelations,
			"category is still referenced by a need membership or pupil assignment and cannot be deleted")
	}

	return s.categories.Delete(ctx, id)
}
