package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorage = errors.New("storage error")
)

// Pupil Errors
var (
	ErrPupilNotFound    = errors.New("pupil not found")
	ErrFormNotFound     = errors.New("form not found")
	ErrInvalidCSVImport = errors.New("invalid CSV import file")
)

// Need Errors
var (
	ErrNeedNotFound     = errors.New("need not found")
	ErrNeedHasRelations = errors.New("need is referenced by categories, overrides or devices and cannot be deleted")
)

// Category Errors
var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryHasRelations = errors.New("category is referenced by needs or pupils and cannot be deleted")
)

// Membership / assignment errors
var (
	ErrDuplicateMembership = errors.New("need already belongs to this category")
	ErrMembershipNotFound  = errors.New("need is not a member of this category")
	ErrDuplicateAssignment = errors.New("category is already assigned to this pupil")
	ErrAssignmentNotFound  = errors.New("category is not assigned to this pupil")
)

// Override errors
var (
	ErrOverrideNotFound  = errors.New("need override not found")
	ErrDuplicateOverride = errors.New("an override already exists for this pupil and need")
)

// Device errors
var (
	ErrDeviceNotFound            = errors.New("device not found")
	ErrDuplicateDeviceAssignment = errors.New("device is already assigned to this need")
	ErrDeviceAssignmentNotFound  = errors.New("device is not assigned to this need")
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
