package services

import (
	"context"
	"fmt"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

// overrideStore is the write side of the need override table
type overrideStore interface {
	overrideSource
	ExistsForPupilNeed(ctx context.Context, pupilID, needID int64) (bool, error)
	Create(ctx context.Context, override *models.PupilNeedOverride) error
	Update(ctx context.Context, override *models.PupilNeedOverride) error
	Delete(ctx context.Context, overrideID int64) error
}

type pupilGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Pupil, error)
}

type needGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Need, error)
}

// OverrideService handles pupil need override operations. It enforces
// at-most-one override per (pupil, need) pair at write time; the table itself
// carries no unique constraint on the pair.
type OverrideService struct {
	overrides overrideStore
	pupils    pupilGetter
	needs     needGetter
}

// NewOverrideService creates a new override service
func NewOverrideService(overrides overrideStore, pupils pupilGetter, needs needGetter) *OverrideService {
	return &OverrideService{
		overrides: overrides,
		pupils:    pupils,
		needs:     needs,
	}
}

// ListOverrides returns all override rows for a pupil, newest first
func (s *OverrideService) ListOverrides(ctx context.Context, pupilID int64) ([]models.PupilNeedOverride, error) {
	if _, err := s.pupils.GetByID(ctx, pupilID); err != nil {
		return nil, err
	}

	overrides, err := s.overrides.ListByPupil(ctx, pupilID)
	if err != nil {
		return nil, fmt.Errorf("error listing need overrides: %w", err)
	}

	return overrides, nil
}

// AddOverride creates a new override after validating both endpoints exist and
// no override already covers the (pupil, need) pair.
func (s *OverrideService) AddOverride(ctx context.Context, pupilID, needID int64, isAdded bool, notes string) (*models.PupilNeedOverride, error) {
	if _, err := s.pupils.GetByID(ctx, pupilID); err != nil {
		return nil, err
	}

	need, err := s.needs.GetByID(ctx, needID)
	if err != nil {
		return nil, err
	}

	exists, err := s.overrides.ExistsForPupilNeed(ctx, pupilID, needID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateOverride
	}

	override := &models.PupilNeedOverride{
		PupilID:  pupilID,
		NeedID:   needID,
		IsAdded:  isAdded,
		Notes:    notes,
		NeedName: need.Name,
	}

	if err := s.overrides.Create(ctx, override); err != nil {
		return nil, err
	}

	return override, nil
}

// UpdateOverride mutates the type and notes of an existing override
func (s *OverrideService) UpdateOverride(ctx context.Context, overrideID int64, isAdded bool, notes string) (*models.PupilNeedOverride, error) {
	override := &models.PupilNeedOverride{
		ID:      overrideID,
		IsAdded: isAdded,
		Notes:   notes,
	}

	if err := s.overrides.Update(ctx, override); err != nil {
		return nil, err
	}

	return override, nil
}

// RemoveOverride deletes an override row; an unknown id is NotFound
func (s *OverrideService) RemoveOverride(ctx context.Context, overrideID int64) error {
	return s.overrides.Delete(ctx, overrideID)
}
