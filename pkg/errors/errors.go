package errors

import (
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"
	
	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "CONFLICT"
	
	// ErrorTypeUnauthorized indicates unauthorized access
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	
	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
	
	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeMissingVitals indicates the client omitted required vitals
	ErrorTypeMissingVitals ErrorType = "MISSING_VITALS"

	// ErrorTypeScoringUnavailable indicates the external scorer failed;
	// the intake fails visibly rather than fabricating a score
	ErrorTypeScoringUnavailable ErrorType = "SCORING_UNAVAILABLE"

	// ErrorTypeRegistrationUnavailable indicates the external queue register
	// failed after a valid score was already computed
	ErrorTypeRegistrationUnavailable ErrorType = "REGISTRATION_UNAVAILABLE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// NewMissingVitalsError creates a new missing vitals error
func NewMissingVitalsError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeMissingVitals,
		Message: message,
	}
}

// NewScoringUnavailableError creates a new scoring unavailable error
func NewScoringUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeScoringUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewRegistrationUnavailableError creates a new registration unavailable error
func NewRegistrationUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeRegistrationUnavailable,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the error's type, or ErrorTypeInternal for non-AppError
// values.
func TypeOf(err error) ErrorType {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type
	}
	return ErrorTypeInternal
}
