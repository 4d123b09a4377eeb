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

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO category (category_name, description)
		VALUES ($1, $2)
		RETURNING category_id
	`

	err := r.db.QueryRow(ctx, query, category.Name, category.Description).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("error creating category: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		SELECT category_id, category_name, COALESCE(description, '')
		FROM category
		WHERE category_id = $1
	`

	var category models.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w: %w", apperrors.ErrStorage, err)
	}

	return &category, nil
}

// GetAll retrieves all categories ordered by name
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT category_id, category_name, COALESCE(description, '')
		FROM category
		ORDER BY category_name
	`

	rows, err := r.db.Query(ctx, query)
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

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE category
		SET category_name = $2, description = $3
		WHERE category_id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		return fmt.Errorf("error updating category: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// IsReferenced reports whether any need membership or pupil assignment still
// points at the category.
func (r *CategoryRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM category_need WHERE category_id = $1)
			OR EXISTS(SELECT 1 FROM pupil_category WHERE category_id = $1)`,
		id).Scan(&referenced)

	if err != nil {
		return false, fmt.Errorf("error checking category references: %w: %w", apperrors.ErrStorage, err)
	}

	return referenced, nil
}

// Delete deletes a category by ID
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM category WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting category: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
