// Package ordering holds the permutation checks shared by every
// admin-orderable collection (services, about cards, homepage slots).
package ordering

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownID marks an id that does not exist in the collection.
	ErrUnknownID = errors.New("unknown id in order")
	// ErrInvalidOrder marks a malformed permutation: wrong length or
	// duplicate ids. The ids themselves all exist.
	ErrInvalidOrder = errors.New("invalid order")
)

// ValidatePermutation checks that proposed is exactly a permutation of
// existing: same length, same id set, no duplicates. Reorders are
// all-or-nothing, so any defect rejects the whole request. The error
// wraps ErrUnknownID or ErrInvalidOrder so callers can tell a missing
// row from a malformed request.
func ValidatePermutation(existing, proposed []string) error {
	if len(proposed) != len(existing) {
		return fmt.Errorf("%w: must list all %d items, got %d", ErrInvalidOrder, len(existing), len(proposed))
	}

	have := make(map[string]bool, len(existing))
	for _, id := range existing {
		have[id] = true
	}

	seen := make(map[string]bool, len(proposed))
	for _, id := range proposed {
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidOrder, id)
		}
		seen[id] = true
		if !have[id] {
			return fmt.Errorf("%w: %s", ErrUnknownID, id)
		}
	}
	return nil
}
