// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters.
//
// Every type wraps a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrStatusTransitionIsInvalid,
// ErrConcurrencyConflict, ErrVersionIsInvalid), so callers match with errors.Is
// and read details with errors.As. Constructors come in pairs, with and without
// a cause; messages stay on one line whatever the cause contains.
//
// The HTTP adapter maps sentinels to status codes:
//
//	IsValidation(err)                        -> 400
//	errors.Is(err, ErrObjectNotFound)        -> 404
//	errors.Is(err, ErrStatusTransitionIsInvalid),
//	errors.Is(err, ErrConcurrencyConflict)   -> 409
package errs
