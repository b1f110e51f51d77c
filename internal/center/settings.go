// Package center holds the wellness center's operational settings and
// their persistence.
package center

import (
	"fmt"
	"time"

	"github.com/Francescodib/armonia-scheduler/internal/schedule"
)

// Settings is the center-wide configuration an administrator can edit.
// WorkingHours feeds the schedule engine's weekly template.
type Settings struct {
	Name                      string                  `json:"name"`
	Timezone                  string                  `json:"timezone"` // e.g., "Europe/Rome"
	SlotDurationMinutes       int                     `json:"slot_duration_minutes"`
	SuggestedDurationsMinutes []int                   `json:"suggested_durations_minutes"`
	MaxAdvanceBookingDays     int                     `json:"max_advance_booking_days"`
	CancellationPolicyHours   int                     `json:"cancellation_policy_hours"`
	ReminderHours             int                     `json:"reminder_hours"`
	WorkingHours              schedule.WeeklyTemplate `json:"working_hours"`
}

// DefaultSettings returns the configuration the center opens with.
func DefaultSettings() *Settings {
	return &Settings{
		Name:                      "Centro Armonia",
		Timezone:                  "Europe/Rome",
		SlotDurationMinutes:       30,
		SuggestedDurationsMinutes: []int{60, 30},
		MaxAdvanceBookingDays:     60,
		CancellationPolicyHours:   24,
		ReminderHours:             24,
		WorkingHours:              schedule.DefaultTemplate(),
	}
}

// Validate rejects settings the engine cannot run with. Callers must
// treat a failure at startup as fatal.
func (s *Settings) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("center: name is required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("center: invalid timezone %q: %w", s.Timezone, err)
	}
	if s.SlotDurationMinutes <= 0 {
		return fmt.Errorf("center: slot duration must be positive, got %d", s.SlotDurationMinutes)
	}
	if len(s.SuggestedDurationsMinutes) == 0 {
		return fmt.Errorf("center: at least one suggested duration is required")
	}
	for _, d := range s.SuggestedDurationsMinutes {
		if d <= 0 {
			return fmt.Errorf("center: suggested duration must be positive, got %d", d)
		}
	}
	if s.MaxAdvanceBookingDays < 0 {
		return fmt.Errorf("center: max advance booking days cannot be negative")
	}
	if err := s.WorkingHours.Validate(); err != nil {
		return fmt.Errorf("center: working hours: %w", err)
	}
	return nil
}
