package appointments

import "errors"

var (
	// ErrNotFound is returned when no appointment has the given id.
	ErrNotFound = errors.New("appointment not found")

	// ErrSlotUnavailable is returned when the requested slot no longer
	// satisfies the availability predicates at submit time.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrPastSlot is returned when a booking would be created or moved
	// into a slot that is already in the past.
	ErrPastSlot = errors.New("slot is in the past")
)
