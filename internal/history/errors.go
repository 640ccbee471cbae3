package history

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates access is not allowed.
	ErrForbidden = errors.New("forbidden")
)
