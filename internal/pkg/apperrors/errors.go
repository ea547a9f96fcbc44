package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrUserIDExists       = errors.New("user ID already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student profile not found")
	ErrStudentIDExists = errors.New("student profile already exists")
)

// ValidationError enumerates which required fields were present in a payload.
// A false entry means the field was missing (or falsy) in the request.
type ValidationError struct {
	RequiredFields map[string]bool
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return "missing required fields"
}

// Unwrap lets errors.Is match against ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError from a presence map
func NewValidationError(requiredFields map[string]bool) *ValidationError {
	return &ValidationError{RequiredFields: requiredFields}
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
