// Package errors provides the error types returned by lifedash commands.
// UserError covers bad flags and input the user can fix, SystemError covers
// configuration and local I/O problems, and the sentinels name the conditions
// the CLI knows how to explain.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrRequestFailed      = errors.New("request failed")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidScore       = errors.New("invalid score")
	ErrInvalidSleep       = errors.New("invalid sleep hours")
	ErrInvalidTarget      = errors.New("invalid weekly target")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidID          = errors.New("invalid habit ID")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrTimeout            = errors.New("operation timed out")
	ErrNotInteractive     = errors.New("not an interactive terminal")
)

// UserError represents an error that the user can fix.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The flag or input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel or underlying error (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// Because attaches a sentinel so callers can match the error with errors.Is.
func (e *UserError) Because(cause error) *UserError {
	e.Cause = cause
	return e
}

// SystemError represents a failure the user cannot fix by changing input.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Chain returns the error chain as a slice of messages, outermost first.
func Chain(err error) []string {
	if err == nil {
		return nil
	}

	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}

// RootCause returns the deepest wrapped error in the chain.
func RootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
