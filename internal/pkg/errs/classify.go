package errs

import "errors"

// IsValidation reports whether err is one of the input validation errors
// (required, invalid or out of range value).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
