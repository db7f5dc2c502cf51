// Package apperr defines the error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or semantically invalid input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a uniqueness violation or a lost optimistic-version race.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks an absent referenced entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials marks an authentication failure. It deliberately does not
	// distinguish an unknown email from a wrong secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation builds a field-level validation error.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
