package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEvaluation is returned when a session has no stored evaluation.
	ErrNoEvaluation = errors.New("no evaluation for session")
	// ErrSessionLimit is returned when no more evaluation sessions fit.
	ErrSessionLimit = errors.New("evaluation session capacity reached")
)

// ValidationError rejects a candidate submission, naming the offending field
// so the client can surface it next to the form input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
