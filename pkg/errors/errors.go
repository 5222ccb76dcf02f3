package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrConfigRead indicates the form-type configuration document could not be read
	ErrConfigRead = errors.New("config read error")

	// ErrConfigWrite indicates the form-type configuration document could not be written
	ErrConfigWrite = errors.New("config write error")

	// ErrStoreIO indicates a form store read or write failure
	ErrStoreIO = errors.New("form store i/o error")

	// ErrRemoteCall indicates a Monday.com API call failure
	ErrRemoteCall = errors.New("remote call failed")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// ConfigReadError wraps a config load failure
func ConfigReadError(err error) error {
	return fmt.Errorf("%w: %v", ErrConfigRead, err)
}

// ConfigWriteError wraps a config save failure
func ConfigWriteError(err error) error {
	return fmt.Errorf("%w: %v", ErrConfigWrite, err)
}

// StoreIOError wraps a form store failure with the affected form id
func StoreIOError(formID string, err error) error {
	return fmt.Errorf("form %s: %w: %v", formID, ErrStoreIO, err)
}

// RemoteCallError wraps a Monday.com API failure with the failed operation
func RemoteCallError(operation string, err error) error {
	return fmt.Errorf("%s: %w: %v", operation, ErrRemoteCall, err)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
