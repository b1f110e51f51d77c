package schedule

import "fmt"

// FitsWithinOpeningHours reports whether a booking starting at start and
// running durationMinutes ends at or before the day's close. Crossing the
// midday closure is allowed here; that concern belongs to
// OverlapsMiddayClosure. On a half-day the morning end is the close.
func FitsWithinOpeningHours(start string, durationMinutes int, window DayWindow) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidDuration, durationMinutes)
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	if window.IsClosed() {
		return false, nil
	}
	closeAt, err := window.closeOfDay()
	if err != nil {
		return false, err
	}
	return startMin+durationMinutes <= closeAt, nil
}

// OverlapsMiddayClosure reports whether the interval
// [start, start+durationMinutes) intersects the closure gap
// [morningEnd, afternoonStart). Days without a genuine split have no
// closure to conflict with.
func OverlapsMiddayClosure(start string, durationMinutes int, window DayWindow) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidDuration, durationMinutes)
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	if !window.HasMiddayClosure() {
		return false, nil
	}
	_, closureStart, closureEnd, _, err := window.bounds()
	if err != nil {
		return false, err
	}
	endMin := startMin + durationMinutes
	return startMin < closureEnd && endMin > closureStart, nil
}
