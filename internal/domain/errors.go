package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors form the failure taxonomy handlers map to HTTP status
// codes. Repositories classify driver errors into these before returning.
var (
	// ErrNotFound covers logical lookups, e.g. rating an order that does
	// not exist or is owned by someone else.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate ratings and answers submitted to a
	// finished gate session.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable covers connectivity failures and per-call
	// timeouts. Callers may back off and retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError is rejected before any write; the caller can correct the
// named field and resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
