package model

import "fmt"

// ValidationError indicates that an input violates one of the aggregate's
// invariants. Retrying doesn't help; the caller has to fix the input.
type ValidationError struct {
	message string
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	return e.message
}

// NewValidationError returns a new error describing the violated constraint.
func NewValidationError(formatString string, a ...interface{}) ValidationError {
	return ValidationError{message: fmt.Sprintf(formatString, a...)}
}

// NotFoundError indicates that a referenced notification does not exist.
type NotFoundError struct {
	ID string
}

// Error returns the error message for a NotFoundError.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("notification not found: %s", e.ID)
}

// StorageError indicates that the persistence backend failed. The caller
// may retry the operation.
type StorageError struct {
	message string
	cause   error
}

// Error returns the error message for a StorageError.
func (e StorageError) Error() string {
	return e.message
}

// Unwrap returns the underlying backend error.
func (e StorageError) Unwrap() error {
	return e.cause
}

// NewStorageError returns a new error wrapping a backend failure.
func NewStorageError(cause error, formatString string, a ...interface{}) StorageError {
	message := fmt.Sprintf(formatString, a...)
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, cause.Error())
	}
	return StorageError{message: message, cause: cause}
}
