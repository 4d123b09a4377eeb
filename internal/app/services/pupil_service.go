package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
	"github.com/oakmere/senreg/internal/pkg/logger"
)

// pupilStore is the pupil table
type pupilStore interface {
	pupilGetter
	GetAll(ctx context.Context) ([]*models.Pupil, error)
	SearchByName(ctx context.Context, fragment string) ([]*models.Pupil, error)
	Create(ctx context.Context, pupil *models.Pupil) error
	Update(ctx context.Context, pupil *models.Pupil) error
	Delete(ctx context.Context, id int64) error
}

type formGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Form, error)
}

// PupilService handles pupil CRUD and bulk CSV import
type PupilService struct {
	pupils pupilStore
	forms  formGetter
}

// NewPupilService creates a new pupil service
func NewPupilService(pupils pupilStore, forms formGetter) *PupilService {
	return &PupilService{
		pupils: pupils,
		forms:  forms,
	}
}

// GetAllPupils returns all pupils ordered by last then first name
func (s *PupilService) GetAllPupils(ctx context.Context) ([]*models.Pupil, error) {
	pupils, err := s.pupils.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving pupils: %w", err)
	}
	return pupils, nil
}

// GetPupilByID returns one pupil
func (s *PupilService) GetPupilByID(ctx context.Context, id int64) (*models.Pupil, error) {
	return s.pupils.GetByID(ctx, id)
}

// CreatePupil creates a pupil after validating its fields and form reference
func (s *PupilService) CreatePupil(ctx context.Context, pupil *models.Pupil) error {
	if err := s.validatePupil(ctx, pupil); err != nil {
		return err
	}

	return s.pupils.Create(ctx, pupil)
}

// UpdatePupil replaces all mutable fields of a pupil
func (s *PupilService) UpdatePupil(ctx context.Context, pupil *models.Pupil) error {
	if err := s.validatePupil(ctx, pupil); err != nil {
		return err
	}

	return s.pupils.Update(ctx, pupil)
}

// DeletePupil deletes a pupil; assignment and override rows go with it
func (s *PupilService) DeletePupil(ctx context.Context, id int64) error {
	return s.pupils.Delete(ctx, id)
}

func (s *PupilService) validatePupil(ctx context.Context, pupil *models.Pupil) error {
	if strings.TrimSpace(pupil.FirstName) == "" {
		return apperrors.NewValidationError("first name cannot be empty")
	}
	if strings.TrimSpace(pupil.LastName) == "" {
		return apperrors.NewValidationError("last name cannot be empty")
	}

	if pupil.FormID != nil {
		if _, err := s.forms.GetByID(ctx, *pupil.FormID); err != nil {
			return err
		}
	}

	return nil
}

// csvColumns is the required header of a pupil import file
var csvColumns = []string{"first_name", "last_name", "form_id", "notes"}

// ImportCSV reads pupil rows from a CSV stream and inserts them one at a
// time. The import is not transactional: a failure partway through leaves the
// rows before it committed, and the returned count says how many made it.
func (s *PupilService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, apperrors.NewCustomError(apperrors.ErrInvalidCSVImport, "CSV file is empty or unreadable")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range csvColumns[:2] {
		if _, ok := columns[required]; !ok {
			return 0, apperrors.NewCustomError(apperrors.ErrInvalidCSVImport,
				fmt.Sprintf("CSV file is missing required column %q", required))
		}
	}

	imported := 0
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, apperrors.NewCustomError(apperrors.ErrInvalidCSVImport,
				fmt.Sprintf("malformed CSV record on line %d", line))
		}

		pupil, err := pupilFromRecord(record, columns)
		if err != nil {
			return imported, apperrors.NewCustomError(apperrors.ErrInvalidCSVImport,
				fmt.Sprintf("invalid pupil on line %d: %v", line, err))
		}

		if err := s.CreatePupil(ctx, pupil); err != nil {
			logger.Error().Err(err).Int("line", line).Msg("Pupil import aborted")
			return imported, fmt.Errorf("import failed on line %d: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func pupilFromRecord(record []string, columns map[string]int) (*models.Pupil, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	pupil := &models.Pupil{
		FirstName: field("first_name"),
		LastName:  field("last_name"),
		Notes:     field("notes"),
	}

	if raw := field("form_id"); raw != "" {
		formID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("form_id %q is not a number", raw)
		}
		pupil.FormID = &formID
	}

	return pupil, nil
}
