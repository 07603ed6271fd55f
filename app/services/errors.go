package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the services. Controllers map these onto the
// response envelope; anything unrecognised becomes a 500.
var (
	// ErrNotFound is returned when an id or slug does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCategory is returned when a category name is already taken.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrDuplicateEmail is returned when registering an email twice.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredential is returned on a failed login or wrong recovery
	// answer.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrPayloadTooLarge is returned when an uploaded photo exceeds the cap.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrInvalidStatus is returned for an order status outside the
	// enumeration.
	ErrInvalidStatus = errors.New("invalid order status")
)

// ValidationError carries field-level messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError builds a ValidationError from a field → message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
