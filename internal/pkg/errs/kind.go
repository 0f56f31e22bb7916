package errs

import "errors"

// Kind is the machine-discriminable class of a failure.
type Kind string

const (
	KindUnknown           Kind = "unknown"
	KindValidation        Kind = "validation"
	KindPrecondition      Kind = "precondition"
	KindCapacityExhausted Kind = "capacity_exhausted"
	KindNotFound          Kind = "not_found"
	KindPersistence       Kind = "persistence"
)

// KindOf classifies err. It returns the empty Kind for a nil error.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCapacityExhausted):
		return KindCapacityExhausted
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrPreconditionFailed):
		return KindPrecondition
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindUnknown
	}
}
