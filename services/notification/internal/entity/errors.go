package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("notification not found")
	ErrForbidden    = errors.New("access to another user's notifications is not allowed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("notification storage failure")
)

// FieldError describes one rejected trigger field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned for malformed or incomplete trigger events.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Reason))
	}
	return "invalid trigger event: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
