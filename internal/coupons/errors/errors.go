package errors

import "errors"

var (
	ErrNotFound = errors.New("coupon not found")

	ErrInvalidID = errors.New("invalid coupon ID format")

	// ErrDuplicateCode surfaces the unique index on the coupon code.
	ErrDuplicateCode = errors.New("coupon code already exists")
)
