package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("domain: not found")

// ErrInvalidInput marks values rejected at the boundary before they reach a scorer.
var ErrInvalidInput = errors.New("domain: invalid input")

// InvalidInputError names the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
