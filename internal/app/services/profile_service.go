package services

import (
	"context"
	"errors"
	"strings"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type pupilSearcher interface {
	pupilGetter
	SearchByName(ctx context.Context, fragment string) ([]*models.Pupil, error)
	Update(ctx context.Context, pupil *models.Pupil) error
}

type categoryLister interface {
	ListCategories(ctx context.Context, pupilID int64) ([]*models.Category, error)
}

type needDeviceLister interface {
	ListByNeedIDs(ctx context.Context, needIDs []int64) ([]models.AssignedDevice, error)
}

type effectiveNeedsResolver interface {
	ResolveEffectiveNeeds(ctx context.Context, pupilID int64) ([]models.EffectiveNeed, error)
}

// ProfileService assembles the composite pupil profile view
type ProfileService struct {
	pupils      pupilSearcher
	forms       formGetter
	assignments categoryLister
	overrides   overrideSource
	resolver    effectiveNeedsResolver
	devices     needDeviceLister
}

// NewProfileService creates a new profile service
func NewProfileService(
	pupils pupilSearcher,
	forms formGetter,
	assignments categoryLister,
	overrides overrideSource,
	resolver effectiveNeedsResolver,
	devices needDeviceLister,
) *ProfileService {
	return &ProfileService{
		pupils:      pupils,
		forms:       forms,
		assignments: assignments,
		overrides:   overrides,
		resolver:    resolver,
		devices:     devices,
	}
}

// GetProfileByID returns the full profile for a pupil id
func (s *ProfileService) GetProfileByID(ctx context.Context, pupilID int64) (*dto.PupilProfile, error) {
	pupil, err := s.pupils.GetByID(ctx, pupilID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, pupil)
}

// GetProfileByName resolves a name fragment to the first matching pupil in
// last name, first name order and returns their profile.
func (s *ProfileService) GetProfileByName(ctx context.Context, name string) (*dto.PupilProfile, error) {
	fragment := strings.TrimSpace(name)
	if fragment == "" {
		return nil, apperrors.NewValidationError("pupil name cannot be empty")
	}

	matches, err := s.pupils.SearchByName(ctx, fragment)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrPupilNotFound, "no pupil matches the given name")
	}

	return s.buildProfile(ctx, matches[0])
}

// UpdateProfile applies a partial update to the pupil behind a profile.
// Omitted fields keep their values; form_id set to null detaches the pupil
// from their form.
func (s *ProfileService) UpdateProfile(ctx context.Context, pupilID int64, req *dto.UpdatePupilRequest) (*dto.PupilProfile, error) {
	pupil, err := s.pupils.GetByID(ctx, pupilID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, apperrors.NewValidationError("first name cannot be empty")
		}
		pupil.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, apperrors.NewValidationError("last name cannot be empty")
		}
		pupil.LastName = *req.LastName
	}
	if req.Notes != nil {
		pupil.Notes = *req.Notes
	}
	if req.FormIDSet {
		if req.FormID != nil {
			if _, err := s.forms.GetByID(ctx, *req.FormID); err != nil {
				return nil, err
			}
		}
		pupil.FormID = req.FormID
	}

	if err := s.pupils.Update(ctx, pupil); err != nil {
		return nil, err
	}

	updated, err := s.pupils.GetByID(ctx, pupilID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, updated)
}

func (s *ProfileService) buildProfile(ctx context.Context, pupil *models.Pupil) (*dto.PupilProfile, error) {
	if pupil.FormID != nil {
		form, err := s.forms.GetByID(ctx, *pupil.FormID)
		switch {
		case err == nil:
			pupil.Form = form
		case !errors.Is(err, apperrors.ErrFormNotFound):
			return nil, err
		}
	}

	categories, err := s.assignments.ListCategories(ctx, pupil.ID)
	if err != nil {
		return nil, err
	}

	effective, err := s.resolver.ResolveEffectiveNeeds(ctx, pupil.ID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrides.ListByPupil(ctx, pupil.ID)
	if err != nil {
		return nil, err
	}

	needIDs := make([]int64, 0, len(effective))
	for _, need := range effective {
		needIDs = append(needIDs, need.NeedID)
	}
	devices, err := s.devices.ListByNeedIDs(ctx, needIDs)
	if err != nil {
		return nil, err
	}

	profile := &dto.PupilProfile{
		Pupil:          *pupil,
		Categories:     make([]models.Category, 0, len(categories)),
		EffectiveNeeds: effective,
		NeedOverrides:  overrides,
		Devices:        devices,
	}
	for _, category := range categories {
		profile.Categories = append(profile.Categories, *category)
	}
	return profile, nil
}
