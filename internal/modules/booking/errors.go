package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrForbidden               = errors.New("forbidden")
	ErrNotFound                = errors.New("booking not found")
)
