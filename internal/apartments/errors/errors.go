package errors

import "errors"

var (
	// ErrUnavailable covers both a missing apartment and one whose
	// availability flag is already false: the conditional flip matched
	// nothing.
	ErrUnavailable = errors.New("apartment is not available")
)
