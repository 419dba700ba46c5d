package errs

import (
	"errors"
	"fmt"
)

// ErrStatusTransitionIsInvalid is the sentinel wrapped by StatusTransitionIsInvalidError.
var ErrStatusTransitionIsInvalid = errors.New("status transition is invalid")

// StatusTransitionIsInvalidError reports a move that the lifecycle graph does not allow.
// From and To hold the printable names of the current and requested states.
type StatusTransitionIsInvalidError struct {
	From string
	To   string
}

// NewStatusTransitionIsInvalidError creates a StatusTransitionIsInvalidError.
func NewStatusTransitionIsInvalidError(from, to fmt.Stringer) *StatusTransitionIsInvalidError {
	return &StatusTransitionIsInvalidError{
		From: from.String(),
		To:   to.String(),
	}
}

func (e *StatusTransitionIsInvalidError) Error() string {
	return fmt.Sprintf("%s: cannot change status from %s to %s",
		ErrStatusTransitionIsInvalid, sanitize(e.From), sanitize(e.To))
}

func (e *StatusTransitionIsInvalidError) Unwrap() error {
	return ErrStatusTransitionIsInvalid
}
