package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505", ConstraintName: "pupil_category_pkey"})

	assert.True(t, IsDuplicateConstraintError(dup, "pupil_category_pkey"))
	assert.False(t, IsDuplicateConstraintError(dup, "need_device_pkey"))
	assert.False(t, IsDuplicateConstraintError(errors.New("connection reset"), "pupil_category_pkey"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23503", ConstraintName: "pupil_form_id_fkey"})

	assert.True(t, IsForeignKeyViolation(fk, "pupil_form_id_fkey"))
	assert.True(t, IsForeignKeyViolation(fk, ""), "empty constraint name matches any foreign key violation")
	assert.False(t, IsForeignKeyViolation(fk, "device_category_id_fkey"))

	dup := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505", ConstraintName: "pupil_form_id_fkey"})
	assert.False(t, IsForeignKeyViolation(dup, "pupil_form_id_fkey"))
	assert.False(t, IsForeignKeyViolation(errors.New("connection reset"), ""))
}
