package schedule

import (
	"fmt"
	"time"
)

// DayWindow holds one day's opening hours: a morning window and an
// afternoon window, separated by the midday closure. A fully closed day
// is a zero-width window on both sides, never a missing entry.
type DayWindow struct {
	MorningStart   string `json:"morning_start"`
	MorningEnd     string `json:"morning_end"`
	AfternoonStart string `json:"afternoon_start"`
	AfternoonEnd   string `json:"afternoon_end"`
}

// ClosedDay returns the zero-width window representing a closed day.
func ClosedDay() DayWindow {
	return DayWindow{MorningStart: "00:00", MorningEnd: "00:00", AfternoonStart: "00:00", AfternoonEnd: "00:00"}
}

// bounds resolves the four window edges to minutes since midnight.
// Validate guarantees success for any template accepted at load time.
func (w DayWindow) bounds() (morningStart, morningEnd, afternoonStart, afternoonEnd int, err error) {
	if morningStart, err = ParseClock(w.MorningStart); err != nil {
		return
	}
	if morningEnd, err = ParseClock(w.MorningEnd); err != nil {
		return
	}
	if afternoonStart, err = ParseClock(w.AfternoonStart); err != nil {
		return
	}
	afternoonEnd, err = ParseClock(w.AfternoonEnd)
	return
}

// Validate checks that all four edges parse and satisfy
// morningStart <= morningEnd <= afternoonStart <= afternoonEnd.
func (w DayWindow) Validate() error {
	ms, me, as, ae, err := w.bounds()
	if err != nil {
		return err
	}
	if ms > me || me > as || as > ae {
		return fmt.Errorf("%w: %s-%s, %s-%s", ErrInvalidWindow,
			w.MorningStart, w.MorningEnd, w.AfternoonStart, w.AfternoonEnd)
	}
	return nil
}

// IsClosed reports whether both windows have zero width.
func (w DayWindow) IsClosed() bool {
	ms, me, as, ae, err := w.bounds()
	if err != nil {
		return true
	}
	return ms == me && as == ae
}

// IsHalfDay reports whether only the morning window is open. Half-day
// detection is purely shape-driven; no weekday is special-cased.
func (w DayWindow) IsHalfDay() bool {
	ms, me, as, ae, err := w.bounds()
	if err != nil {
		return false
	}
	return me > ms && as == ae
}

// HasMiddayClosure reports whether the day genuinely splits into two
// windows with a closure gap between them.
func (w DayWindow) HasMiddayClosure() bool {
	ms, me, as, ae, err := w.bounds()
	if err != nil {
		return false
	}
	return me > ms && ae > as && as > me
}

// closeOfDay returns the minute bookings must end by: the afternoon end,
// or the morning end when the afternoon window has zero width.
func (w DayWindow) closeOfDay() (int, error) {
	_, me, as, ae, err := w.bounds()
	if err != nil {
		return 0, err
	}
	if ae == as {
		return me, nil
	}
	return ae, nil
}

// Describe renders the day's opening hours for display.
func (w DayWindow) Describe() string {
	switch {
	case w.IsClosed():
		return "Closed"
	case w.IsHalfDay():
		return fmt.Sprintf("%s - %s", w.MorningStart, w.MorningEnd)
	default:
		return fmt.Sprintf("%s - %s, %s - %s", w.MorningStart, w.MorningEnd, w.AfternoonStart, w.AfternoonEnd)
	}
}

// WeeklyTemplate maps each weekday to its opening windows. Every day is
// required by construction, so a missing day is a compile-time error
// rather than a runtime nil.
type WeeklyTemplate struct {
	Monday    DayWindow `json:"monday"`
	Tuesday   DayWindow `json:"tuesday"`
	Wednesday DayWindow `json:"wednesday"`
	Thursday  DayWindow `json:"thursday"`
	Friday    DayWindow `json:"friday"`
	Saturday  DayWindow `json:"saturday"`
	Sunday    DayWindow `json:"sunday"`
}

// DefaultTemplate returns the center's standard week: weekdays split
// around a 13:00-14:00 closure, Saturday morning only, Sunday closed.
func DefaultTemplate() WeeklyTemplate {
	weekday := DayWindow{MorningStart: "09:00", MorningEnd: "13:00", AfternoonStart: "14:00", AfternoonEnd: "18:00"}
	return WeeklyTemplate{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  DayWindow{MorningStart: "09:00", MorningEnd: "13:00", AfternoonStart: "13:00", AfternoonEnd: "13:00"},
		Sunday:    ClosedDay(),
	}
}

// Validate checks every day of the template. A violation is a
// configuration error and must abort startup.
func (t WeeklyTemplate) Validate() error {
	days := []struct {
		name   string
		window DayWindow
	}{
		{"monday", t.Monday},
		{"tuesday", t.Tuesday},
		{"wednesday", t.Wednesday},
		{"thursday", t.Thursday},
		{"friday", t.Friday},
		{"saturday", t.Saturday},
		{"sunday", t.Sunday},
	}
	for _, d := range days {
		if err := d.window.Validate(); err != nil {
			return fmt.Errorf("schedule: %s: %w", d.name, err)
		}
	}
	return nil
}

// WindowsFor resolves a calendar date to its weekday's opening windows.
func (t WeeklyTemplate) WindowsFor(date time.Time) DayWindow {
	switch date.Weekday() {
	case time.Monday:
		return t.Monday
	case time.Tuesday:
		return t.Tuesday
	case time.Wednesday:
		return t.Wednesday
	case time.Thursday:
		return t.Thursday
	case time.Friday:
		return t.Friday
	case time.Saturday:
		return t.Saturday
	default:
		return t.Sunday
	}
}

// IsOpenDay reports whether the date's window has positive width.
func (t WeeklyTemplate) IsOpenDay(date time.Time) bool {
	return !t.WindowsFor(date).IsClosed()
}
