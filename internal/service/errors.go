package service

import "errors"

// ValidationError reports malformed or contradictory input: bad dates,
// overlapping bookings, non-upgrade room changes, unconfirmed-booking upgrade
// attempts, cancelling an already-cancelled booking, missing confirmation.
// Surfaced to API callers as a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an absent referenced entity. Surfaced as a 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func validation(msg string) error {
	return &ValidationError{Message: msg}
}

func notFound(msg string) error {
	return &NotFoundError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
