package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record id or natural key does not resolve.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or invalid required field. During batch
// import it is recorded per row instead of aborting the batch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// ConflictError reports a duplicate natural key on the direct-create path.
// The CSV import path merges instead of conflicting.
type ConflictError struct {
	Key string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Key)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field}
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
