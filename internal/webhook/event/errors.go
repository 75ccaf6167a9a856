package event

import (
	"errors"
	"fmt"
)

var (
	ErrParse        = errors.New("malformed webhook payload")
	ErrMissingField = errors.New("required field missing")
)

// MissingFieldError names the field a known event kind arrived without.
type MissingFieldError struct {
	Kind  Kind
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrMissingField, e.Kind, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func missing(kind Kind, field string) error {
	return &MissingFieldError{Kind: kind, Field: field}
}
