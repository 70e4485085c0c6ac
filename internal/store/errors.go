package store

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference is returned when an insert points at a row that does
	// not exist (foreign key violation).
	ErrInvalidReference = errors.New("referenced entity does not exist")

	// ErrStorage wraps every other driver failure.
	ErrStorage = errors.New("storage failure")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidReference)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
