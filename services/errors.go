package services

import "errors"

// Domain errors are expected outcomes and are returned as values so
// callers can tell "already done" apart from an infrastructure fault.
// Anything not in this list is a storage-layer failure and surfaces as
// a generic internal error.
var (
	ErrAlreadyMember   = errors.New("already a member of this guild")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidRange    = errors.New("value out of range")
)

// IsDomainError reports whether err is one of the expected domain
// outcomes, as opposed to a storage fault.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidRange)
}
