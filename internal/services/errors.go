package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/errors"
	"github.com/mrlokans/bookshelf/internal/id"
)

// translate maps a store error to the domain taxonomy. Errors that are
// already domain errors pass through. conflict is the message used when a
// unique constraint was violated.
func translate(err error, action, conflict string) error {
	if err == nil {
		return nil
	}

	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		return err
	}

	var notFound *database.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return errors.NotFoundf("%s not found", notFound.Entity).
			WithDetails(map[string]any{"ids": notFound.IDs}).
			WithCause(err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound("not found").WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Conflict(conflict).WithCause(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(err, errors.CodeInternal, action+" was interrupted")
	default:
		return errors.Wrap(err, errors.CodeInternal, "failed to "+action)
	}
}

// requireUUID rejects identifiers that cannot belong to a stored record
// before they reach the database, where some dialects would fail to cast
// them.
func requireUUID(entity, value string) error {
	if !id.IsUUID(value) {
		return errors.NotFoundf("%s not found", entity).
			WithDetails(map[string]any{"ids": []string{value}})
	}
	return nil
}
