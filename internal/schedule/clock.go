package schedule

import "time"

// Clock supplies "now". It is injected instead of reading the wall clock
// directly so temporal-gate behavior is deterministic under test.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// IsPastDay reports whether date's calendar day is strictly before now's,
// ignoring the time of day.
func IsPastDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// IsPastClock reports whether a time of day on the given date is already
// behind now. Dates other than today are never past here; whole past days
// are IsPastDay's concern.
func IsPastClock(clock string, date, now time.Time) (bool, error) {
	clockMin, err := ParseClock(clock)
	if err != nil {
		return false, err
	}
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false, nil
	}
	return clockMin < now.Hour()*60+now.Minute(), nil
}

// IsBookable reports whether a slot may still receive a new or moved
// booking: neither on a past day nor behind today's clock. It gates
// mutation only; existing appointments stay visible regardless.
func IsBookable(clock string, date, now time.Time) (bool, error) {
	if IsPastDay(date, now) {
		return false, nil
	}
	past, err := IsPastClock(clock, date, now)
	if err != nil {
		return false, err
	}
	return !past, nil
}
