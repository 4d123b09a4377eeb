package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
	"github.com/oakmere/senreg/internal/pkg/dberrors"
)

// CategoryNeedRepository handles the many-to-many membership between
// categories and needs.
type CategoryNeedRepository struct {
	db *pgxpool.Pool
}

// NewCategoryNeedRepository creates a new category-need membership repository
func NewCategoryNeedRepository(db *pgxpool.Pool) *CategoryNeedRepository {
	return &CategoryNeedRepository{
		db: db,
	}
}

// ListNeeds retrieves all needs that are members of a category
func (r *CategoryNeedRepository) ListNeeds(ctx context.Context, categoryID int64) ([]*models.Need, error) {
	query := `
		SELECT n.need_id, n.name, COALESCE(n.short_description, ''), COALESCE(n.description, '')
		FROM need n
		JOIN category_need cn ON n.need_id = cn.need_id
		WHERE cn.category_id = $1
		ORDER BY n.name
	`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var needs []*models.Need
	for rows.Next() {
		var need models.Need
		if err := rows.Scan(&need.ID, &need.Name, &need.ShortDescription, &need.Description); err != nil {
			return nil, err
		}
		needs = append(needs, &need)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return needs, nil
}

// ListCategories retrieves all categories a need belongs to
func (r *CategoryNeedRepository) ListCategories(ctx context.Context, needID int64) ([]*models.Category, error) {
	query := `
		SELECT c.category_id, c.category_name, COALESCE(c.description, '')
		FROM category c
		JOIN category_need cn ON c.category_id = cn.category_id
		WHERE cn.need_id = $1
		ORDER BY c.category_name
	`

	rows, err := r.db.Query(ctx, query, needID)
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

// Add creates a membership edge between a category and a need. The composite
// primary key backs the duplicate check.
func (r *CategoryNeedRepository) Add(ctx context.Context, categoryID, needID int64) error {
	query := `INSERT INTO category_need (category_id, need_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, categoryID, needID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "category_need_pkey") {
			return apperrors.ErrDuplicateMembership
		}
		return fmt.Errorf("error adding need to category: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// Remove deletes a membership edge
func (r *CategoryNeedRepository) Remove(ctx context.Context, categoryID, needID int64) error {
	query := `DELETE FROM category_need WHERE category_id = $1 AND need_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, categoryID, needID)
	if err != nil {
		return fmt.Errorf("error removing need from category: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}

	return nil
}
