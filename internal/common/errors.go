// Package common defines sentinel errors shared by stores, services and the
// CLI. Callers match them with errors.Is.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors at the store and service boundary.
	ErrInvalidInput = errors.New("invalid input")

	// Import errors.
	ErrConflict = errors.New("conflict")
)
