package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidActivity is wrapped by every activity catalog validation failure
	ErrInvalidActivity = errors.New("invalid activity")
	// ErrInvalidResponse is wrapped by every availability response validation failure
	ErrInvalidResponse = errors.New("invalid availability response")
	// ErrInvalidSlot is wrapped by slot and slot rule validation failures
	ErrInvalidSlot = errors.New("invalid time slot")
)

// ValidationError describes which input field was rejected and why
type ValidationError struct {
	Kind   error
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalid(kind error, field, format string, args ...any) error {
	return &ValidationError{Kind: kind, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a rejected-input error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
