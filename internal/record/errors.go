package record

import (
	"errors"
	"fmt"
)

// InputError reports a record that fails boundary validation.
//
// Validation errors include:
//   - Negative quantity on a need or offer item
//   - Empty item name
//   - Empty node id
//   - Non-finite trust delta (NaN or Inf)
//
// Operations that receive invalid input abort without partial mutation.
type InputError struct {
	// Field names the offending field, e.g. "items[2].quantity".
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// IsInputError returns true if the error is a validation error.
// Uses errors.As to handle wrapped errors.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// NewInputError creates an InputError for a specific field.
func NewInputError(field, message string) *InputError {
	return &InputError{Field: field, Message: message}
}
