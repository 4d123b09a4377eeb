package services

import (
	"context"

	"github.com/oakmere/senreg/internal/app/models"
)

type membershipStore interface {
	ListNeeds(ctx context.Context, categoryID int64) ([]*models.Need, error)
	Add(ctx context.Context, categoryID, needID int64) error
	Remove(ctx context.Context, categoryID, needID int64) error
}

// CategoryNeedService manages which needs a category implies
type CategoryNeedService struct {
	memberships membershipStore
	categories  categoryGetter
	needs       needGetter
}

// NewCategoryNeedService creates a new membership service
func NewCategoryNeedService(memberships membershipStore, categories categoryGetter, needs needGetter) *CategoryNeedService {
	return &CategoryNeedService{
		memberships: memberships,
		categories:  categories,
		needs:       needs,
	}
}

// ListNeeds returns the needs implied by a category
func (s *CategoryNeedService) ListNeeds(ctx context.Context, categoryID int64) ([]*models.Need, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.memberships.ListNeeds(ctx, categoryID)
}

// AddNeed puts a need into a category. Adding one that is already a member
// fails with a duplicate membership error.
func (s *CategoryNeedService) AddNeed(ctx context.Context, categoryID, needID int64) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	if _, err := s.needs.GetByID(ctx, needID); err != nil {
		return err
	}
	return s.memberships.Add(ctx, categoryID, needID)
}

// RemoveNeed takes a need out of a category
func (s *CategoryNeedService) RemoveNeed(ctx context.Context, categoryID, needID int64) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return s.memberships.Remove(ctx, categoryID, needID)
}
