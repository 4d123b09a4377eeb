package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
	"github.com/oakmere/senreg/internal/pkg/dberrors"
)

// PupilCategoryRepository handles the many-to-many assignment of categories to
// pupils, and the category-derived needs query the resolver feeds on.
type PupilCategoryRepository struct {
	db *pgxpool.Pool
}

// NewPupilCategoryRepository creates a new pupil-category assignment repository
func NewPupilCategoryRepository(db *pgxpool.Pool) *PupilCategoryRepository {
	return &PupilCategoryRepository{
		db: db,
	}
}

// ListCategories retrieves all categories assigned to a pupil
func (r *PupilCategoryRepository) ListCategories(ctx context.Context, pupilID int64) ([]*models.Category, error) {
	query := `
		SELECT c.category_id, c.category_name, COALESCE(c.description, '')
		FROM category c
		JOIN pupil_category pc ON c.category_id = pc.category_id
		WHERE pc.pupil_id = $1
		ORDER BY c.category_name
	`

	rows, err := r.db.Query(ctx, query, pupilID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Assign creates an assignment edge between a pupil and a category. A second
// identical row would be harmless to the resolver's set union but indicates a
// caller bug, so duplicates are rejected via the composite primary key.
func (r *PupilCategoryRepository) Assign(ctx context.Context, pupilID, categoryID int64) error {
	query := `INSERT INTO pupil_category (pupil_id, category_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, pupilID, categoryID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "pupil_category_pkey") {
			return apperrors.ErrDuplicateAssignment
		}
		return fmt.Errorf("error assigning category to pupil: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// Remove deletes an assignment edge
func (r *PupilCategoryRepository) Remove(ctx context.Context, pupilID, categoryID int64) error {
	query := `DELETE FROM pupil_category WHERE pupil_id = $1 AND category_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, pupilID, categoryID)
	if err != nil {
		return fmt.Errorf("error removing category from pupil: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// GrantedNeeds returns one row per (need, granting category) pair reachable
// through the pupil's assigned categories. A need granted by several assigned
// categories appears once per category; the resolver folds the rows.
func (r *PupilCategoryRepository) GrantedNeeds(ctx context.Context, pupilID int64) ([]models.NeedGrant, error) {
	query := `
		SELECT n.need_id, n.name, COALESCE(n.short_description, ''), COALESCE(n.description, ''), c.category_name
		FROM need n
		JOIN category_need cn ON n.need_id = cn.need_id
		JOIN category c ON cn.category_id = c.category_id
		JOIN pupil_category pc ON c.category_id = pc.category_id
		WHERE pc.pupil_id = $1
		ORDER BY n.name, c.category_name
	`

	rows, err := r.db.Query(ctx, query, pupilID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []models.NeedGrant
	for rows.Next() {
		var grant models.NeedGrant
		if err := rows.Scan(
			&grant.ID,
			&grant.Name,
			&grant.ShortDescription,
			&grant.Description,
			&grant.CategoryName,
		); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grants, nil
}
