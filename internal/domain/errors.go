package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("authentication required")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("invalid properties")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrConferenceNotFound = fmt.Errorf("conference %w", ErrNotFound)
	ErrSpeakerNotFound    = fmt.Errorf("speaker %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrDuplicateEmail     = fmt.Errorf("email is already registered: %w", ErrConflict)
)

// ValidationError collects every failing rule of a request. FormErrors apply to
// the request as a whole, FieldErrors are keyed by the JSON field name.
type ValidationError struct {
	Message     string              `json:"-"`
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// NewValidationError returns an empty ValidationError with the given client message.
// An empty message falls back to ErrValidation's text.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		Message:     message,
		FormErrors:  []string{},
		FieldErrors: map[string][]string{},
	}
}

// AddField records a failing rule on a single field.
func (e *ValidationError) AddField(field, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = map[string][]string{}
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

// AddForm records a failing rule that is not tied to one field.
func (e *ValidationError) AddForm(msg string) {
	e.FormErrors = append(e.FormErrors, msg)
}

// HasErrors reports whether any rule failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && (len(e.FormErrors) > 0 || len(e.FieldErrors) > 0)
}

// ClientMessage is the top-level message written in the error envelope.
func (e *ValidationError) ClientMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Error() string {
	parts := append([]string{}, e.FormErrors...)
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.FieldErrors[f], ", "))
	}
	return e.ClientMessage() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
