package validator

import (
	"errors"
	"fmt"
)

// ErrValidation is the common sentinel wrapped by every validation error, so
// callers can branch on the whole class with errors.Is.
var ErrValidation = errors.New("validation error")

var (
	ErrEmptyURL      = fmt.Errorf("%w: URL cannot be empty", ErrValidation)
	ErrInvalidURL    = fmt.Errorf("%w: invalid URL format", ErrValidation)
	ErrInvalidScheme = fmt.Errorf("%w: URL must use http or https scheme", ErrValidation)
	ErrInvalidHost   = fmt.Errorf("%w: URL must have a valid host", ErrValidation)
)
