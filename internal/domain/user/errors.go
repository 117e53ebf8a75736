package user

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("user validation failed")
	ErrNotFound   = errors.New("user not found")
)

type ValidationError struct {
	Field string
	Value any
}

func NewValidationError(field string, value any) *ValidationError {
	return &ValidationError{Field: field, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user not found: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
