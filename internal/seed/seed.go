package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/oakmere/senreg/internal/db"
)

// defaultForms are the form groups a fresh install starts with
var defaultForms = []struct {
	name    string
	year    int
	teacher string
}{
	{"7A", 7, "Ms. Patel"},
	{"7B", 7, "Mr. Hughes"},
	{"8A", 8, "Mrs. Okafor"},
	{"8B", 8, "Mr. Lindqvist"},
}

// defaultCatalogue maps starter categories to the needs each one implies
var defaultCatalogue = map[string][]string{
	"Dyslexia":           {"Extra time in exams", "Coloured overlays"},
	"Hearing impairment": {"Front row seating", "Radio aid"},
	"ADHD":               {"Movement breaks", "Extra time in exams"},
}

// CreateDefaultData seeds forms and a starter need/category catalogue on an
// empty database. Tables that already hold rows are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (forms and catalogue)...")

	return db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
		if err := seedForms(ctx, tx, lgr); err != nil {
			return err
		}
		return seedCatalogue(ctx, tx, lgr)
	})
}

func seedForms(ctx context.Context, tx pgx.Tx, lgr zerolog.Logger) error {
	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM form`).Scan(&count); err != nil {
		return fmt.Errorf("error counting forms: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int("count", count).Msg("Forms already present, skipping seed")
		return nil
	}

	for _, f := range defaultForms {
		_, err := tx.Exec(ctx,
			`INSERT INTO form (form_name, form_year, teacher_name) VALUES ($1, $2, $3)`,
			f.name, f.year, f.teacher)
		if err != nil {
			return fmt.Errorf("error seeding form %s: %w", f.name, err)
		}
	}
	lgr.Info().Int("count", len(defaultForms)).Msg("Default forms created")
	return nil
}

func seedCatalogue(ctx context.Context, tx pgx.Tx, lgr zerolog.Logger) error {
	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM category`).Scan(&count); err != nil {
		return fmt.Errorf("error counting categories: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int("count", count).Msg("Categories already present, skipping seed")
		return nil
	}

	needIDs := make(map[string]int64)
	for categoryName, needNames := range defaultCatalogue {
		var categoryID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO category (category_name, description) VALUES ($1, '') RETURNING category_id`,
			categoryName).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("error seeding category %s: %w", categoryName, err)
		}

		for _, needName := range needNames {
			needID, ok := needIDs[needName]
			if !ok {
				err := tx.QueryRow(ctx,
					`INSERT INTO need (name, short_description, description) VALUES ($1, '', '') RETURNING need_id`,
					needName).Scan(&needID)
				if err != nil {
					return fmt.Errorf("error seeding need %s: %w", needName, err)
				}
				needIDs[needName] = needID
			}

			_, err := tx.Exec(ctx,
				`INSERT INTO category_need (category_id, need_id) VALUES ($1, $2)`,
				categoryID, needID)
			if err != nil {
				return fmt.Errorf("error linking need %s to category %s: %w", needName, categoryName, err)
			}
		}
	}

	lgr.Info().Int("categories", len(defaultCatalogue)).Int("needs", len(needIDs)).Msg("Default catalogue created")
	return nil
}
