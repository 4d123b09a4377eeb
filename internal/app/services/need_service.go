package services

import (
	"context"
	"strings"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type needStore interface {
	needGetter
	GetAll(ctx context.Context) ([]*models.Need, error)
	Create(ctx context.Context, need *models.Need) error
	Update(ctx context.Context, need *models.Need) error
	Delete(ctx context.Context, id int64) error
	IsReferenced(ctx context.Context, id int64) (bool, error)
}

type needCategoryLister interface {
	ListCategories(ctx context.Context, needID int64) ([]*models.Category, error)
}

// NeedService handles the need catalogue
type NeedService struct {
	needs      needStore
	categories needCategoryLister
}

// NewNeedService creates a new need service
func NewNeedService(needs needStore, categories needCategoryLister) *NeedService {
	return &NeedService{
		needs:      needs,
		categories: categories,
	}
}

// GetAllNeeds returns the need catalogue ordered by name
func (s *NeedService) GetAllNeeds(ctx context.Context) ([]*models.Need, error) {
	return s.needs.GetAll(ctx)
}

// GetNeedByID returns one need
func (s *NeedService) GetNeedByID(ctx context.Context, id int64) (*models.Need, error) {
	return s.needs.GetByID(ctx, id)
}

// GetNeedCategories returns the categories a need belongs to
func (s *NeedService) GetNeedCategories(ctx context.Context, needID int64) ([]*models.Category, error) {
	if _, err := s.needs.GetByID(ctx, needID); err != nil {
		return nil, err
	}
	return s.categories.ListCategories(ctx, needID)
}

// CreateNeed creates a catalogue entry
func (s *NeedService) CreateNeed(ctx context.Context, need *models.Need) error {
	if strings.TrimSpace(need.Name) == "" {
		return apperrors.NewValidationError("need name cannot be empty")
	}
	return s.needs.Create(ctx, need)
}

// UpdateNeed replaces the fields of a catalogue entry
func (s *NeedService) UpdateNeed(ctx context.Context, need *models.Need) error {
	if strings.TrimSpace(need.Name) == "" {
		return apperrors.NewValidationError("need name cannot be empty")
	}
	return s.needs.Update(ctx, need)
}

// DeleteNeed removes a need unless a category, override or device still
// references it.
func (s *NeedService) DeleteNeed(ctx context.Context, id int64) error {
	if _, err := s.needs.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.needs.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewCustomError(apperrors.ErrNeedHasRelations,
			"need is still referenced by a category, override or device and cannot be deleted")
	}

	return s.needs.Delete(ctx, id)
}
