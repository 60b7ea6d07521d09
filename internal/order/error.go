package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrNotPending guards the transitions only offered while an order is
	// still open: completion and cancellation.
	ErrNotPending = errors.New("order is not pending")

	// ErrAlreadyCompleted blocks payments against a finalized order.
	ErrAlreadyCompleted = errors.New("order already completed")

	// ErrNothingDue blocks payments when the due amount is already zero.
	ErrNothingDue = errors.New("nothing due on order")

	// Completion is a two-step confirmation; these cover the second step
	// arriving without, after, or mismatching the first.
	ErrNoPendingConfirmation = errors.New("no pending completion confirmation")
	ErrConfirmationExpired   = errors.New("completion confirmation expired")
	ErrConfirmationMismatch  = errors.New("completion confirmation token mismatch")
)

// MalformedRecordError is returned by the store-boundary parse when a raw
// record cannot be represented as a strict typed one.
type MalformedRecordError struct {
	Record string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: field %q: %s", e.Record, e.Field, e.Reason)
}
