package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/lifedash/internal/errors"
)

// ParseError represents an input parsing error with helpful suggestions.
type ParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string

	// Sentinel is the errors package sentinel this failure maps to.
	Sentinel error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Sentinel
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"today",
	"yesterday",
	"2025-03-02",
	"3 days ago",
	"last friday",
	"this week",
}

// IDExamples provides example habit ID formats.
var IDExamples = []string{
	"12",
	"#12",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(field, input, message string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      field,
		Message:    message,
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or natural language like 'yesterday' or '3 days ago'.",
		Sentinel:   errors.ErrInvalidDate,
	}
}

// NewIDError creates a habit ID parse error.
func NewIDError(input string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      "habit id",
		Message:    "must be a positive number",
		Examples:   IDExamples,
		Suggestion: "Run 'lifedash habit list' to see habit IDs.",
		Sentinel:   errors.ErrInvalidID,
	}
}

// ToUserError converts a ParseError to a UserError for consistent handling.
func (e *ParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion).Because(e.Sentinel)
}
