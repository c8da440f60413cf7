// Package domain defines the core catalog entities and their validation rules.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity or request fails validation.
	// It is usually wrapped in a ValidationError carrying the field name.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or missing.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when a request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is a field-scoped validation failure. The Field name matches
// the JSON field of the offending input so handlers can build the
// {"errors": {field: [messages]}} response envelope.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
