package transport

import (
	"errors"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/store"
)

// MapError is the single place where an error becomes an AppError.
func MapError(err error) *internal.AppError {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, store.ErrDuplicate):
		return internal.NewConflictError("data already exists").WithCause(err)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidReference):
		return internal.NewNotFoundError("data not found", internal.ErrCodeDataNotFound).WithCause(err)
	case errors.Is(err, store.ErrStorage):
		return internal.NewStorageError(err)
	default:
		return internal.NewInternalError(err)
	}
}
