package forms

import (
	"errors"
	"fmt"
)

// ValidationError is a user-facing rejection of submitted input.
// No state is mutated when one is returned.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a validation error for a field
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required builds the "<label> is required" error
func Required(field Field) *ValidationError {
	return &ValidationError{Field: field.Name, Message: field.Label + " is required"}
}

// AsValidation unwraps err into a ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
