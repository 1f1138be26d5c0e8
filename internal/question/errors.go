package question

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing question or an empty result where one is required.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation signals a request the service cannot process.
	ErrValidation = errors.New("unprocessable")
)

// FieldError names the request field that failed validation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", ErrValidation, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
