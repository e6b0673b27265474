package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input to a mutating operation.
	ErrValidation = errors.New("validation failed")
	// ErrStoreNotFound is returned when the targeted store id does not exist.
	ErrStoreNotFound = errors.New("store not found")
)

// ValidationError describes which field was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
