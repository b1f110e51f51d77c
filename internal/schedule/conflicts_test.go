package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDurations = DurationMap{
	"massage-60": 60,
	"facial-30":  30,
	"body-90":    90,
}

func TestConflictsOverlap(t *testing.T) {
	// Existing appointment 10:00 for 60 minutes, so [10:00, 11:00).
	bookings := []Booking{{ID: "a1", StartTime: "10:00", TreatmentID: "massage-60"}}

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{"contained candidate", "10:30", 30, true},
		{"starts when existing ends", "11:00", 30, false},
		{"ends when existing starts", "09:30", 30, false},
		{"covers existing", "09:30", 120, true},
		{"identical interval", "10:00", 60, true},
		{"disjoint", "14:00", 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unresolved, err := Conflicts(tt.start, tt.duration, bookings, testDurations, "")
			require.NoError(t, err)
			assert.Empty(t, unresolved)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConflictsSymmetric(t *testing.T) {
	// If A's interval conflicts with B's, B's conflicts with A's.
	a := Booking{ID: "a", StartTime: "10:00", TreatmentID: "massage-60"}
	b := Booking{ID: "b", StartTime: "10:30", TreatmentID: "facial-30"}

	abConflict, _, err := Conflicts(b.StartTime, 30, []Booking{a}, testDurations, "")
	require.NoError(t, err)
	baConflict, _, err := Conflicts(a.StartTime, 60, []Booking{b}, testDurations, "")
	require.NoError(t, err)
	assert.Equal(t, abConflict, baConflict)
	assert.True(t, abConflict)
}

func TestConflictsExcludesSelf(t *testing.T) {
	bookings := []Booking{{ID: "editing", StartTime: "10:00", TreatmentID: "massage-60"}}

	// Re-validating the same interval against itself must not conflict
	// when the appointment being edited is excluded.
	got, _, err := Conflicts("10:00", 60, bookings, testDurations, "editing")
	require.NoError(t, err)
	assert.False(t, got)

	got, _, err = Conflicts("10:00", 60, bookings, testDurations, "someone-else")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestConflictsUnknownTreatment(t *testing.T) {
	bookings := []Booking{
		{ID: "orphan", StartTime: "10:00", TreatmentID: "deleted-treatment"},
		{ID: "ok", StartTime: "15:00", TreatmentID: "facial-30"},
	}

	// An unresolvable treatment takes zero duration: it never blocks, but
	// its id is reported for the caller's observability channel.
	got, unresolved, err := Conflicts("10:00", 60, bookings, testDurations, "")
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, []string{"orphan"}, unresolved)
}

func TestConflictsInvariants(t *testing.T) {
	bookings := []Booking{{ID: "a1", StartTime: "10:00", TreatmentID: "massage-60"}}

	_, _, err := Conflicts("10:00", 0, bookings, testDurations, "")
	assert.True(t, errors.Is(err, ErrInvalidDuration))

	_, _, err = Conflicts("oops", 30, bookings, testDurations, "")
	assert.True(t, errors.Is(err, ErrMalformedTime))

	_, _, err = Conflicts("10:00", 30, []Booking{{ID: "bad", StartTime: "25:99", TreatmentID: "facial-30"}}, testDurations, "")
	assert.True(t, errors.Is(err, ErrMalformedTime))
}

func TestConflictsEmptyCalendar(t *testing.T) {
	got, unresolved, err := Conflicts("10:00", 60, nil, testDurations, "")
	require.NoError(t, err)
	assert.False(t, got)
	assert.Empty(t, unresolved)
}
