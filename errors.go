package fileguard

import (
	"errors"
	"fmt"
)

// GuardErrorType represents different types of guard failures
type GuardErrorType string

const (
	// ErrorTypeInput indicates the supplied buffer was empty.
	ErrorTypeInput GuardErrorType = "input"

	// ErrorTypeClassifier indicates the classification engine itself failed
	// to operate. Unrecognized content is not a classifier error; it resolves
	// to application/octet-stream.
	ErrorTypeClassifier GuardErrorType = "classifier"

	// ErrorTypeConfig indicates the caller supplied an explicitly empty
	// allow-list.
	ErrorTypeConfig GuardErrorType = "config"
)

// GuardError represents a custom error for upload validation.
// It implements the error interface and includes the error type for
// programmatic handling.
type GuardError struct {
	// Type categorizes the failure (input, classifier, config).
	Type GuardErrorType

	// Message is the human-readable error description.
	Message string
}

// Error implements the error interface
func (e *GuardError) Error() string {
	return fmt.Sprintf("%s validation error: %s", e.Type, e.Message)
}

// NewGuardError creates a new GuardError
func NewGuardError(errType GuardErrorType, message string) *GuardError {
	return &GuardError{
		Type:    errType,
		Message: message,
	}
}

// IsGuardError checks if an error is a GuardError
func IsGuardError(err error) bool {
	var guardErr *GuardError
	return errors.As(err, &guardErr)
}

// IsErrorOfType checks if an error is a GuardError of the specified type
func IsErrorOfType(err error, errType GuardErrorType) bool {
	var guardErr *GuardError
	if errors.As(err, &guardErr) {
		return guardErr.Type == errType
	}
	return false
}

// GetErrorType returns the type of a GuardError, or empty string if not a GuardError
func GetErrorType(err error) GuardErrorType {
	var guardErr *GuardError
	if errors.As(err, &guardErr) {
		return guardErr.Type
	}
	return ""
}

// GetErrorMessage returns the message of a GuardError, or empty string if not a GuardError
func GetErrorMessage(err error) string {
	var guardErr *GuardError
	if errors.As(err, &guardErr) {
		return guardErr.Message
	}
	return ""
}

// errEmptyInput is the shared empty-buffer failure. Detection and
// validation must surface the identical error.
func errEmptyInput() *GuardError {
	return NewGuardError(ErrorTypeInput, "empty file content")
}
