// Package apperr holds the error kinds every workflow reports. Callers wrap
// them with fmt.Errorf("%w: ...") and the HTTP layer maps them with errors.Is.
package apperr

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

// ValidationError carries per-field messages for the response body.
type ValidationError struct {
	Fields  map[string]string
	message string
}

func Validation(message string, fields map[string]string) error {
	return &ValidationError{Fields: fields, message: message}
}

func (e *ValidationError) Error() string {
	return e.message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
