package services

import (
	"context"
	"fmt"

	"github.com/oakmere/senreg/internal/app/models"
)

// assignmentStore is the pupil-category assignment table plus the resolver's
// category-derived needs query.
type assignmentStore interface {
	grantSource
	ListCategories(ctx context.Context, pupilID int64) ([]*models.Category, error)
	Assign(ctx context.Context, pupilID, categoryID int64) error
	Remove(ctx context.Context, pupilID, categoryID int64) error
}

type categoryGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Category, error)
}

// PupilCategoryService handles assigning categories to pupils
type PupilCategoryService struct {
	assignments assignmentStore
	pupils      pupilGetter
	categories  categoryGetter
}

// NewPupilCategoryService creates a new pupil-category assignment service
func NewPupilCategoryService(assignments assignmentStore, pupils pupilGetter, categories categoryGetter) *PupilCategoryService {
	return &PupilCategoryService{
		assignments: assignments,
		pupils:      pupils,
		categories:  categories,
	}
}

// ListCategories returns all categories assigned to a pupil
func (s *PupilCategoryService) ListCategories(ctx context.Context, pupilID int64) ([]*models.Category, error) {
	if _, err := s.pupils.GetByID(ctx, pupilID); err != nil {
		return nil, err
	}

	categories, err := s.assignments.ListCategories(ctx, pupilID)
	if err != nil {
		return nil, fmt.Errorf("error listing pupil categories: %w", err)
	}

	return categories, nil
}

// AssignCategory assigns a category to a pupil. Assigning a category the pupil
// already holds is a conflict.
func (s *PupilCategoryService) AssignCategory(ctx context.Context, pupilID, categoryID int64) error {
	if _, err := s.pupils.GetByID(ctx, pupilID); err != nil {
		return err
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}

	return s.assignments.Assign(ctx, pupilID, categoryID)
}

// RemoveCategory unassigns a category from a pupil
func (s *PupilCategoryService) RemoveCategory(ctx context.Context, pupilID, categoryID int64) error {
	return s.assignments.Remove(ctx, pupilID, categoryID)
}
