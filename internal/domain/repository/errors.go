package repository

import "errors"

// Storage-level sentinel errors. Services translate these into the
// operation-specific failures the handlers map to HTTP statuses.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
