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

// NeedRepository handles database operations for needs
type NeedRepository struct {
	db *pgxpool.Pool
}

// NewNeedRepository creates a new need repository
func NewNeedRepository(db *pgxpool.Pool) *NeedRepository {
	return &NeedRepository{
		db: db,
	}
}

// Create inserts a new need
func (r *NeedRepository) Create(ctx context.Context, need *models.Need) error {
	query := `
		INSERT INTO need (name, short_description, description)
		VALUES ($1, $2, $3)
		RETURNING need_id
	`

	err := r.db.QueryRow(ctx, query, need.Name, need.ShortDescription, need.Description).Scan(&need.ID)
	if err != nil {
		return fmt.Errorf("error creating need: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// GetByID retrieves a need by ID
func (r *NeedRepository) GetByID(ctx context.Context, id int64) (*models.Need, error) {
	query := `
		SELECT need_id, name, COALESCE(short_description, ''), COALESCE(description, '')
		FROM need
		WHERE need_id = $1
	`

	var need models.Need
	err := r.db.QueryRow(ctx, query, id).Scan(
		&need.ID,
		&need.Name,
		&need.ShortDescription,
		&need.Description,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNeedNotFound
		}
		return nil, fmt.Errorf("error retrieving need: %w: %w", apperrors.ErrStorage, err)
	}

	return &need, nil
}

// GetAll retrieves all needs ordered by name
func (r *NeedRepository) GetAll(ctx context.Context) ([]*models.Need, error) {
	query := `
		SELECT need_id, name, COALESCE(short_description, ''), COALESCE(description, '')
		FROM need
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var needs []*models.Need
	for rows.Next() {
		var need models.Need
		if err := rows.Scan(
			&need.ID,
			&need.Name,
			&need.ShortDescription,
			&need.Description,
		); err != nil {
			return nil, err
		}
		needs = append(needs, &need)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return needs, nil
}

// Update updates an existing need
func (r *NeedRepository) Update(ctx context.Context, need *models.Need) error {
	query := `
		UPDATE need
		SET name = $2, short_description = $3, description = $4
		WHERE need_id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, need.ID, need.Name, need.ShortDescription, need.Description)
	if err != nil {
		return fmt.Errorf("error updating need: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNeedNotFound
	}

	return nil
}

// IsReferenced reports whether any category membership, pupil override or
// device assignment still points at the need.
func (r *NeedRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM category_need WHERE need_id = $1)
			OR EXISTS(SELECT 1 FROM pupil_need_override WHERE need_id = $1)
			OR EXISTS(SELECT 1 FROM need_device WHERE need_id = $1)`,
		id).Scan(&referenced)

	if err != nil {
		return false, fmt.Errorf("error checking need references: %w: %w", apperrors.ErrStorage, err)
	}

	return referenced, nil
}

// Delete deletes a need by ID. Callers must have checked IsReferenced first;
// deleting a referenced need is rejected by the service layer.
func (r *NeedRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM need WHERE need_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting need: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNeedNotFound
	}

	return nil
}
