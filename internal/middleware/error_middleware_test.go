package middleware

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	HandleAPIError(c, err)
	return rec
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        apperrors.NewValidationError("first name cannot be empty"),
			wantStatus: 400,
		},
		{
			name:       "csv import error",
			err:        apperrors.NewCustomError(apperrors.ErrInvalidCSVImport, "invalid row on line 3"),
			wantStatus: 400,
		},
		{
			name:       "entity not found",
			err:        apperrors.ErrPupilNotFound,
			wantStatus: 404,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("loading profile: %w", apperrors.ErrFormNotFound),
			wantStatus: 404,
		},
		{
			name:       "duplicate override",
			err:        apperrors.ErrDuplicateOverride,
			wantStatus: 409,
		},
		{
			name:       "referenced need",
			err:        apperrors.NewCustomError(apperrors.ErrNeedHasRelations, "need is still referenced"),
			wantStatus: 409,
		},
		{
			name:       "storage failure",
			err:        fmt.Errorf("error creating pupil: %w: %w", apperrors.ErrStorage, errors.New("connection reset")),
			wantStatus: 500,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handleError(tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleAPIErrorStorageDetailsNotLeaked(t *testing.T) {
	err := fmt.Errorf("error creating pupil: %w: %w", apperrors.ErrStorage, errors.New("dial tcp 10.0.0.5:5432"))
	rec := handleError(err)

	assert.Equal(t, 500, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
