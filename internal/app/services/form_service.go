package services

import (
	"context"

	"github.com/oakmere/senreg/internal/app/models"
)

type formStore interface {
	formGetter
	GetAll(ctx context.Context) ([]*models.Form, error)
}

// FormService exposes the read-only form group list
type FormService struct {
	forms formStore
}

// NewFormService creates a new form service
func NewFormService(forms formStore) *FormService {
	return &FormService{forms: forms}
}

// GetAllForms returns every form group
func (s *FormService) GetAllForms(ctx context.Context) ([]*models.Form, error) {
	return s.forms.GetAll(ctx)
}

// GetFormByID returns one form group
func (s *FormService) GetFormByID(ctx context.Context, id int64) (*models.Form, error) {
	return s.forms.GetByID(ctx, id)
}
