// Package schedule implements the availability engine for a single-location
// appointment calendar: it resolves a date to its opening windows, enumerates
// bookable slots, and decides feasibility, midday-closure overlap, booking
// conflicts, and past-time gating. Every function is a pure computation;
// times of day are "HH:MM" strings and all interval arithmetic uses
// half-open [start, end) intervals of minutes since midnight.
package schedule

import "fmt"

// ParseClock converts a zero-padded 24-hour "HH:MM" string into minutes
// since midnight. Anything else is rejected with ErrMalformedTime.
func ParseClock(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
		}
	}
	hour := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minute := int(clock[3]-'0')*10 + int(clock[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as a zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes returns the time of day the given number of minutes after
// clock. Appointments never store their end time; it is always derived
// through this helper from the start time and the treatment duration.
func AddMinutes(clock string, minutes int) (string, error) {
	start, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatClock(start + minutes), nil
}
