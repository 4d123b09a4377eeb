package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

// FormRepository handles database operations for forms. Forms are reference
// data: they are seeded, never created through the API.
type FormRepository struct {
	db *pgxpool.Pool
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *pgxpool.Pool) *FormRepository {
	return &FormRepository{
		db: db,
	}
}

// GetAll retrieves all forms ordered by name
func (r *FormRepository) GetAll(ctx context.Context) ([]*models.Form, error) {
	query := `
		SELECT form_id, form_name, form_year, COALESCE(teacher_name, '')
		FROM form
		ORDER BY form_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []*models.Form
	for rows.Next() {
		var form models.Form
		if err := rows.Scan(&form.ID, &form.Name, &form.Year, &form.TeacherName); err != nil {
			return nil, err
		}
		forms = append(forms, &form)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return forms, nil
}

// GetByID retrieves a form by ID
func (r *FormRepository) GetByID(ctx context.Context, id int64) (*models.Form, error) {
	query := `
		SELECT form_id, form_name, form_year, COALESCE(teacher_name, '')
		FROM form
		WHERE form_id = $1
	`

	var form models.Form
	err := r.db.QueryRow(ctx, query, id).Scan(&form.ID, &form.Name, &form.Year, &form.TeacherName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormNotFound
		}
		return nil, fmt.Errorf("error retrieving form: %w: %w", apperrors.ErrStorage, err)
	}

	return &form, nil
}
