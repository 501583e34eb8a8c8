package utils

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors for the whole backend. Repositories and services wrap
// these with fmt.Errorf("...: %w", err) so callers can classify with
// errors.Is regardless of how deep the failure happened.
var (
	// ErrNotFound means a referenced id does not resolve to a record.
	// Treated as "record disappeared", never as a server fault.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidMatch is a matching-rule violation: pairing two reports
	// of the same type, or correlating a non-person report.
	ErrInvalidMatch = errors.New("invalid match")

	// ErrMatchIncomplete means one half of a pairing was written and the
	// second half failed; the pair needs operator reconciliation.
	ErrMatchIncomplete = errors.New("match incomplete, records may be inconsistent")

	// ErrInvalidTransition rejects a status change that would move a
	// record backwards in its lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrTimeout surfaces a store operation that exceeded the caller's
	// deadline. Not retried here; retry policy belongs to the caller.
	ErrTimeout = errors.New("operation timed out")

	// ErrStoreUnavailable means the persistence layer is unreachable.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrInvalidInput = errors.New("invalid input")
)

// TranslateStoreError maps driver-level failures onto the sentinel
// taxonomy. Unknown errors are reported as store unavailability so no
// request ever hangs on an opaque driver error.
func TranslateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrTimeout),
		errors.Is(err, ErrStoreUnavailable):
		return err
	case mongo.IsTimeout(err):
		return ErrTimeout
	case mongo.IsNetworkError(err):
		return ErrStoreUnavailable
	default:
		return ErrStoreUnavailable
	}
}
