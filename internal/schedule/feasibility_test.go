package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitsWithinOpeningHours(t *testing.T) {
	window := DefaultTemplate().Monday // closes 18:00

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{"ends exactly at close", "17:00", 60, true},
		{"ends past close", "17:30", 60, false},
		{"spans the midday closure but ends in time", "12:30", 90, true},
		{"morning booking", "09:00", 30, true},
		{"full day overrun", "09:00", 600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitsWithinOpeningHours(tt.start, tt.duration, window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFitsWithinOpeningHoursHalfDay(t *testing.T) {
	window := DefaultTemplate().Saturday // morning only, closes 13:00

	got, err := FitsWithinOpeningHours("12:00", 60, window)
	require.NoError(t, err)
	assert.True(t, got, "ending exactly at the morning close must fit")

	got, err = FitsWithinOpeningHours("12:30", 60, window)
	require.NoError(t, err)
	assert.False(t, got, "half day close is the morning end, not the afternoon end")
}

func TestFitsWithinOpeningHoursClosedDay(t *testing.T) {
	got, err := FitsWithinOpeningHours("10:00", 30, ClosedDay())
	require.NoError(t, err)
	assert.False(t, got)
}

func TestFitsWithinOpeningHoursInvariants(t *testing.T) {
	window := DefaultTemplate().Monday

	_, err := FitsWithinOpeningHours("10:00", 0, window)
	assert.True(t, errors.Is(err, ErrInvalidDuration))

	_, err = FitsWithinOpeningHours("10:00", -30, window)
	assert.True(t, errors.Is(err, ErrInvalidDuration))

	_, err = FitsWithinOpeningHours("ten", 30, window)
	assert.True(t, errors.Is(err, ErrMalformedTime))
}

func TestOverlapsMiddayClosure(t *testing.T) {
	window := DefaultTemplate().Monday // closure 13:00-14:00

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{"well before closure", "09:00", 60, false},
		{"ends exactly at closure start", "12:30", 30, false},
		{"spans into closure", "12:30", 90, true},
		{"inside closure", "13:00", 30, true},
		{"straddles whole closure", "12:00", 180, true},
		{"starts exactly at closure end", "14:00", 60, false},
		{"afternoon booking", "15:00", 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OverlapsMiddayClosure(tt.start, tt.duration, window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlapsMiddayClosureNoSplit(t *testing.T) {
	// Half-days and contiguous days have no closure to conflict with.
	halfDay := DefaultTemplate().Saturday
	got, err := OverlapsMiddayClosure("12:30", 90, halfDay)
	require.NoError(t, err)
	assert.False(t, got)

	contiguous := DayWindow{MorningStart: "09:00", MorningEnd: "13:00", AfternoonStart: "13:00", AfternoonEnd: "18:00"}
	got, err = OverlapsMiddayClosure("12:30", 90, contiguous)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestOverlapsMiddayClosureInvariants(t *testing.T) {
	window := DefaultTemplate().Monday

	_, err := OverlapsMiddayClosure("12:30", 0, window)
	assert.True(t, errors.Is(err, ErrInvalidDuration))

	_, err = OverlapsMiddayClosure("half past", 30, window)
	assert.True(t, errors.Is(err, ErrMalformedTime))
}
