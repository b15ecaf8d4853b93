package store

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a lookup miss. For batch lookups, FoundIDs
// carries the subset of identifiers that did resolve so callers can make
// partial-success decisions.
type NotFoundError struct {
	Resource string
	ID       string
	FoundIDs []string
}

func (e *NotFoundError) Error() string {
	if len(e.FoundIDs) > 0 {
		return fmt.Sprintf("%s not found: %s (found: %s)", e.Resource, e.ID, strings.Join(e.FoundIDs, ", "))
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// CorruptRecordError indicates a stored record that cannot be hydrated,
// e.g. an unknown topic type discriminator. This is a data-integrity fault
// and is never coerced into a default variant.
type CorruptRecordError struct {
	Resource string
	ID       string
	Detail   string
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt %s record %s: %s", e.Resource, e.ID, e.Detail)
}
