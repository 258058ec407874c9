package errors

import "errors"

var (
	ErrNotFound = errors.New("agreement not found")

	ErrInvalidID = errors.New("invalid agreement ID format")

	// ErrDuplicate surfaces the partial unique index on pending
	// agreements per user email.
	ErrDuplicate = errors.New("user already has an agreement")
)
