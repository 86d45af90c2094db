package shared

import (
	"fmt"
	"strings"
)

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors groups every failed field of one request
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, v := range e {
		messages = append(messages, v.Error())
	}
	return "validation failed: " + strings.Join(messages, "; ")
}
