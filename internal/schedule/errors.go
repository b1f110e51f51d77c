package schedule

import "errors"

var (
	// ErrMalformedTime is returned when a time of day is not a valid
	// zero-padded 24-hour "HH:MM" string.
	ErrMalformedTime = errors.New("malformed time of day")

	// ErrInvalidDuration is returned when a duration is zero or negative.
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrInvalidSlotSize is returned when the slot size is zero or negative.
	ErrInvalidSlotSize = errors.New("slot size must be positive")

	// ErrUnknownTreatment is returned when a treatment id cannot be
	// resolved against the catalog.
	ErrUnknownTreatment = errors.New("unknown treatment")

	// ErrInvalidWindow is returned when a day window violates the
	// morning/afternoon ordering invariant.
	ErrInvalidWindow = errors.New("invalid opening window")
)
