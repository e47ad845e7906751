package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// NotFoundError reports which referenced records were missing. It unwraps
// to gorm.ErrRecordNotFound so callers can test for either.
type NotFoundError struct {
	Entity string
	IDs    []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, strings.Join(e.IDs, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return gorm.ErrRecordNotFound
}

// NewNotFoundError builds a NotFoundError for a single id.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, IDs: []string{id}}
}
