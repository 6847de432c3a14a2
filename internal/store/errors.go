package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no record matched the given id.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or empty required field on create.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required and must not be empty", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
