package expense

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("expense not found")

// MalformedRecordError is returned by the store-boundary parse when a raw
// entry cannot be represented as a strict typed one.
type MalformedRecordError struct {
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed expense record: field %q: %s", e.Field, e.Reason)
}
