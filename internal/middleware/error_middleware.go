package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

var notFoundErrors = []error{
	apperrors.ErrPupilNotFound,
	apperrors.ErrFormNotFound,
	apperrors.ErrNeedNotFound,
	apperrors.ErrCategoryNotFound,
	apperrors.ErrOverrideNotFound,
	apperrors.ErrDeviceNotFound,
	apperrors.ErrMembershipNotFound,
	apperrors.ErrAssignmentNotFound,
	apperrors.ErrDeviceAssignmentNotFound,
}

var duplicateErrors = []error{
	apperrors.ErrDuplicateMembership,
	apperrors.ErrDuplicateAssignment,
	apperrors.ErrDuplicateOverride,
	apperrors.ErrDuplicateDeviceAssignment,
}

// HandleAPIError maps service errors onto the standard error envelope.
// Controllers call this with whatever their service returned.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest, apperrors.ErrInvalidCSVImport):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, errorMessage(err, "Validation failed")),
		})
		return
	case apperrors.Is(err, apperrors.ErrResourceNotFound, notFoundErrors...):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, errorMessage(err, "Resource not found")),
		})
		return
	case apperrors.Is(err, apperrors.ErrNeedHasRelations, apperrors.ErrCategoryHasRelations):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceConflict, errorMessage(err, "Resource is still referenced")),
		})
		return
	case apperrors.Is(err, apperrors.ErrConflict, duplicateErrors...):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, errorMessage(err, "Resource already exists")),
		})
		return
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
		return
	}
}

// errorMessage prefers the wrapped CustomError message, then the sentinel
// text, over the generic fallback.
func errorMessage(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}

	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			return capitalize(sentinel.Error())
		}
	}
	for _, sentinel := range duplicateErrors {
		if errors.Is(err, sentinel) {
			return capitalize(sentinel.Error())
		}
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
