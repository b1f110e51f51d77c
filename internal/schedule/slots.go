package schedule

import "fmt"

// SlotsFor enumerates every candidate start time inside the day's opening
// windows: each t with windowStart <= t < windowEnd reachable from the
// window start by whole multiples of slotMinutes, morning first, ascending.
// A zero-width window emits nothing; a span that is not an exact multiple
// of the slot size truncates the trailing partial slot. The result depends
// only on the inputs, so repeated calls yield identical sequences.
func SlotsFor(window DayWindow, slotMinutes int) ([]string, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlotSize, slotMinutes)
	}
	morningStart, morningEnd, afternoonStart, afternoonEnd, err := window.bounds()
	if err != nil {
		return nil, err
	}

	var slots []string
	for t := morningStart; t < morningEnd; t += slotMinutes {
		slots = append(slots, FormatClock(t))
	}
	for t := afternoonStart; t < afternoonEnd; t += slotMinutes {
		slots = append(slots, FormatClock(t))
	}
	return slots, nil
}

// InOpeningWindow reports whether a time of day falls inside the morning
// or afternoon window (half-open on the right).
func InOpeningWindow(clock string, window DayWindow) (bool, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return false, err
	}
	morningStart, morningEnd, afternoonStart, afternoonEnd, err := window.bounds()
	if err != nil {
		return false, err
	}
	return (t >= morningStart && t < morningEnd) || (t >= afternoonStart && t < afternoonEnd), nil
}
