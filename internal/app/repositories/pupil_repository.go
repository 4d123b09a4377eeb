package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
	"github.com/oakmere/senreg/internal/pkg/dberrors"
)

// PupilRepository handles database operations for pupils
type PupilRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPupilRepository creates a new pupil repository
func NewPupilRepository(db *pgxpool.Pool) *PupilRepository {
	return &PupilRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pupil
func (r *PupilRepository) Create(ctx context.Context, pupil *models.Pupil) error {
	query := `
		INSERT INTO pupil (first_name, last_name, form_id, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING pupil_id
	`

	err := r.db.QueryRow(ctx, query, pupil.FirstName, pupil.LastName, pupil.FormID, pupil.Notes).Scan(&pupil.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "pupil_form_id_fkey") {
			return apperrors.ErrFormNotFound
		}
		return fmt.Errorf("error creating pupil: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// GetByID retrieves a pupil by ID
func (r *PupilRepository) GetByID(ctx context.Context, id int64) (*models.Pupil, error) {
	query := `
		SELECT pupil_id, first_name, last_name, form_id, COALESCE(notes, '')
		FROM pupil
		WHERE pupil_id = $1
	`

	var pupil models.Pupil
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pupil.ID,
		&pupil.FirstName,
		&pupil.LastName,
		&pupil.FormID,
		&pupil.Notes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPupilNotFound
		}
		return nil, fmt.Errorf("error retrieving pupil: %w: %w", apperrors.ErrStorage, err)
	}

	return &pupil, nil
}

// GetAll retrieves all pupils ordered by last name then first name
func (r *PupilRepository) GetAll(ctx context.Context) ([]*models.Pupil, error) {
	query := `
		SELECT pupil_id, first_name, last_name, form_id, COALESCE(notes, '')
		FROM pupil
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPupils(rows)
}

// SearchByName finds pupils whose "first last" concatenation contains the given
// fragment, case-insensitively, ordered by last name then first name.
func (r *PupilRepository) SearchByName(ctx context.Context, fragment string) ([]*models.Pupil, error) {
	builder := r.sb.
		Select("pupil_id", "first_name", "last_name", "form_id", "COALESCE(notes, '')").
		From("pupil").
		Where(squirrel.ILike{"first_name || ' ' || last_name": "%" + strings.TrimSpace(fragment) + "%"}).
		OrderBy("last_name", "first_name")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building pupil search query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPupils(rows)
}

// Update replaces all mutable pupil fields
func (r *PupilRepository) Update(ctx context.Context, pupil *models.Pupil) error {
	query := `
		UPDATE pupil
		SET first_name = $2, last_name = $3, form_id = $4, notes = $5
		WHERE pupil_id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, pupil.ID, pupil.FirstName, pupil.LastName, pupil.FormID, pupil.Notes)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "pupil_form_id_fkey") {
			return apperrors.ErrFormNotFound
		}
		return fmt.Errorf("error updating pupil: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPupilNotFound
	}

	return nil
}

// Delete deletes a pupil by ID
func (r *PupilRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM pupil WHERE pupil_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting pupil: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPupilNotFound
	}

	return nil
}

func scanPupils(rows pgx.Rows) ([]*models.Pupil, error) {
	var pupils []*models.Pupil
	for rows.Next() {
		var pupil models.Pupil
		if err := rows.Scan(
			&pupil.ID,
			&pupil.FirstName,
			&pupil.LastName,
			&pupil.FormID,
			&pupil.Notes,
		); err != nil {
			return nil, err
		}
		pupils = append(pupils, &pupil)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pupils, nil
}
