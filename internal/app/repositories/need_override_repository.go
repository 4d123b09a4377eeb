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

// NeedOverrideRepository handles pupil need override rows and the override
// queries the resolver feeds on.
type NeedOverrideRepository struct {
	db *pgxpool.Pool
}

// NewNeedOverrideRepository creates a new need override repository
func NewNeedOverrideRepository(db *pgxpool.Pool) *NeedOverrideRepository {
	return &NeedOverrideRepository{
		db: db,
	}
}

// ListByPupil retrieves all override rows for a pupil, most recently created
// first, each joined with the need name for display.
func (r *NeedOverrideRepository) ListByPupil(ctx context.Context, pupilID int64) ([]models.PupilNeedOverride, error) {
	query := `
		SELECT pno.override_id, pno.pupil_id, pno.need_id, pno.is_added, COALESCE(pno.notes, ''), pno.created_at, n.name
		FROM pupil_need_override pno
		JOIN need n ON pno.need_id = n.need_id
		WHERE pno.pupil_id = $1
		ORDER BY pno.override_id DESC
	`

	rows, err := r.db.Query(ctx, query, pupilID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []models.PupilNeedOverride
	for rows.Next() {
		var override models.PupilNeedOverride
		if err := rows.Scan(
			&override.ID,
			&override.PupilID,
			&override.NeedID,
			&override.IsAdded,
			&override.Notes,
			&override.CreatedAt,
			&override.NeedName,
		); err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// AddedNeeds retrieves the full need rows for every addition override of a
// pupil, for the resolver's added set.
func (r *NeedOverrideRepository) AddedNeeds(ctx context.Context, pupilID int64) ([]models.Need, error) {
	query := `
		SELECT n.need_id, n.name, COALESCE(n.short_description, ''), COALESCE(n.description, '')
		FROM pupil_need_override pno
		JOIN need n ON pno.need_id = n.need_id
		WHERE pno.pupil_id = $1 AND pno.is_added = true
		ORDER BY n.name
	`

	rows, err := r.db.Query(ctx, query, pupilID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var needs []models.Need
	for rows.Next() {
		var need models.Need
		if err := rows.Scan(&need.ID, &need.Name, &need.ShortDescription, &need.Description); err != nil {
			return nil, err
		}
		needs = append(needs, need)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return needs, nil
}

// ExistsForPupilNeed reports whether any override row already exists for the
// (pupil, need) pair. The table carries no unique constraint on the pair, so
// the at-most-one policy is enforced here at write time.
func (r *NeedOverrideRepository) ExistsForPupilNeed(ctx context.Context, pupilID, needID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pupil_need_override WHERE pupil_id = $1 AND need_id = $2)`,
		pupilID, needID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking override existence: %w: %w", apperrors.ErrStorage, err)
	}

	return exists, nil
}

// Create inserts a new override row
func (r *NeedOverrideRepository) Create(ctx context.Context, override *models.PupilNeedOverride) error {
	query := `
		INSERT INTO pupil_need_override (pupil_id, need_id, is_added, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING override_id, created_at
	`

	err := r.db.QueryRow(ctx, query, override.PupilID, override.NeedID, override.IsAdded, override.Notes).
		Scan(&override.ID, &override.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating need override: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// Update mutates the type and notes of an existing override row
func (r *NeedOverrideRepository) Update(ctx context.Context, override *models.PupilNeedOverride) error {
	query := `
		UPDATE pupil_need_override
		SET is_added = $2, notes = $3
		WHERE override_id = $1
		RETURNING pupil_id, need_id, created_at
	`

	err := r.db.QueryRow(ctx, query, override.ID, override.IsAdded, override.Notes).
		Scan(&override.PupilID, &override.NeedID, &override.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrOverrideNotFound
		}
		return fmt.Errorf("error updating need override: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// Delete removes an override row. Deleting an unknown id is an error, not a
// silent no-op.
func (r *NeedOverrideRepository) Delete(ctx context.Context, overrideID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM pupil_need_override WHERE override_id = $1`, overrideID)
	if err != nil {
		return fmt.Errorf("error deleting need override: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOverrideNotFound
	}

	return nil
}
