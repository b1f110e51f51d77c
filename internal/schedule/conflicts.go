package schedule

import "fmt"

// Booking is the projection of an existing appointment the conflict
// detector needs. Callers pre-filter by date and drop cancelled
// appointments before building the slice.
type Booking struct {
	ID          string
	StartTime   string
	TreatmentID string
}

// DurationLookup resolves a treatment id to its duration in minutes.
// The treatments catalog implements it.
type DurationLookup interface {
	DurationMinutes(id string) (int, bool)
}

// DurationMap is a plain map implementation of DurationLookup.
type DurationMap map[string]int

func (m DurationMap) DurationMinutes(id string) (int, bool) {
	d, ok := m[id]
	return d, ok
}

// Conflicts reports whether the candidate interval
// [start, start+durationMinutes) overlaps any existing booking's interval,
// using the half-open test. The booking whose id equals excludeID is
// skipped, so an appointment being edited never conflicts with itself.
// Bookings whose treatment id cannot be resolved take zero duration and
// never block; their ids are returned so the caller can surface the
// lookup failure to its observability channel.
func Conflicts(start string, durationMinutes int, bookings []Booking, durations DurationLookup, excludeID string) (conflict bool, unresolved []string, err error) {
	if durationMinutes <= 0 {
		return false, nil, fmt.Errorf("%w: %d", ErrInvalidDuration, durationMinutes)
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return false, nil, err
	}
	endMin := startMin + durationMinutes

	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		bookedStart, err := ParseClock(b.StartTime)
		if err != nil {
			return false, unresolved, fmt.Errorf("schedule: booking %s: %w", b.ID, err)
		}
		minutes, ok := durations.DurationMinutes(b.TreatmentID)
		if !ok || minutes <= 0 {
			unresolved = append(unresolved, b.ID)
			continue
		}
		bookedEnd := bookedStart + minutes
		if startMin < bookedEnd && endMin > bookedStart {
			return true, unresolved, nil
		}
	}
	return false, unresolved, nil
}
