package schedule

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Francescodib/armonia-scheduler/internal/observability/metrics"
	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

var tracer = otel.Tracer("armonia/schedule")

// Engine composes the resolver, slot generator, feasibility checks,
// conflict detector and temporal gate into the availability facade the
// HTTP layer and the form validator call.
type Engine struct {
	template    WeeklyTemplate
	slotMinutes int
	durations   DurationLookup
	// suggested durations tested by MaxFeasibleDuration, in descending
	// preference order.
	suggested []int
	clock     Clock
	logger    *logging.Logger
	metrics   *metrics.SchedulingMetrics
}

// EngineConfig carries the engine's immutable collaborators.
type EngineConfig struct {
	Template           WeeklyTemplate
	SlotMinutes        int
	Durations          DurationLookup
	SuggestedDurations []int
	Clock              Clock
	Logger             *logging.Logger
	Metrics            *metrics.SchedulingMetrics
}

// NewEngine validates the template and builds an engine. An invalid
// template is a configuration error; callers must treat it as fatal.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Template.Validate(); err != nil {
		return nil, err
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = 30
	}
	if cfg.Durations == nil {
		return nil, fmt.Errorf("schedule: duration lookup required")
	}
	if len(cfg.SuggestedDurations) == 0 {
		cfg.SuggestedDurations = []int{60, 30}
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Engine{
		template:    cfg.Template,
		slotMinutes: cfg.SlotMinutes,
		durations:   cfg.Durations,
		suggested:   cfg.SuggestedDurations,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}, nil
}

// Template returns the weekly template the engine was built with.
func (e *Engine) Template() WeeklyTemplate { return e.template }

// SlotMinutes returns the configured slot granularity.
func (e *Engine) SlotMinutes() int { return e.slotMinutes }

// WindowsFor resolves a date to its opening windows.
func (e *Engine) WindowsFor(date time.Time) DayWindow {
	return e.template.WindowsFor(date)
}

// IsOpenDay reports whether the center opens at all on the date.
func (e *Engine) IsOpenDay(date time.Time) bool {
	return e.template.IsOpenDay(date)
}

// AllSlotsForDay returns the full grid of slot labels for a date,
// including slots that will be marked unavailable. Used for rendering.
func (e *Engine) AllSlotsForDay(date time.Time) ([]string, error) {
	return SlotsFor(e.template.WindowsFor(date), e.slotMinutes)
}

// AvailableSlots returns, in ascending order, every slot on the date at
// which the given treatment could start right now: the day is open, the
// slot is not in the past, the treatment ends before close, does not
// overlap the midday closure, and does not collide with any booking.
// excludeID names an appointment being edited, which never conflicts
// with itself.
func (e *Engine) AvailableSlots(ctx context.Context, date time.Time, treatmentID string, bookings []Booking, excludeID string) ([]string, error) {
	start := time.Now()
	_, span := tracer.Start(ctx, "schedule.available_slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("schedule.date", date.Format("2006-01-02")),
		attribute.String("schedule.treatment_id", treatmentID),
		attribute.Int("schedule.bookings", len(bookings)),
	)

	durationMinutes, ok := e.durations.DurationMinutes(treatmentID)
	if !ok {
		e.metrics.ObserveAvailability("unknown_treatment", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %q", ErrUnknownTreatment, treatmentID)
	}

	slots, err := e.availableSlots(date, durationMinutes, bookings, excludeID)
	if err != nil {
		e.metrics.ObserveAvailability("error", time.Since(start).Seconds())
		return nil, err
	}
	span.SetAttributes(attribute.Int("schedule.available", len(slots)))
	e.metrics.ObserveAvailability("ok", time.Since(start).Seconds())
	return slots, nil
}

func (e *Engine) availableSlots(date time.Time, durationMinutes int, bookings []Booking, excludeID string) ([]string, error) {
	window := e.template.WindowsFor(date)
	if window.IsClosed() {
		return nil, nil
	}
	candidates, err := SlotsFor(window, e.slotMinutes)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	var available []string
	for _, slot := range candidates {
		ok, err := e.slotAccepts(slot, durationMinutes, window, date, now, bookings, excludeID)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, slot)
		}
	}
	return available, nil
}

// slotAccepts runs the full predicate chain for one candidate slot.
func (e *Engine) slotAccepts(slot string, durationMinutes int, window DayWindow, date, now time.Time, bookings []Booking, excludeID string) (bool, error) {
	bookable, err := IsBookable(slot, date, now)
	if err != nil {
		return false, err
	}
	if !bookable {
		return false, nil
	}
	fits, err := FitsWithinOpeningHours(slot, durationMinutes, window)
	if err != nil {
		return false, err
	}
	if !fits {
		return false, nil
	}
	overlaps, err := OverlapsMiddayClosure(slot, durationMinutes, window)
	if err != nil {
		return false, err
	}
	if overlaps {
		return false, nil
	}
	conflict, unresolved, err := Conflicts(slot, durationMinutes, bookings, e.durations, excludeID)
	e.reportUnresolved(unresolved)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// SlotAvailable re-runs the availability predicate chain for one start
// time, which the form validator uses at submit time. Unlike the grid
// path the start is user-supplied, so membership in an opening window is
// checked explicitly rather than guaranteed by construction.
func (e *Engine) SlotAvailable(date time.Time, start, treatmentID string, bookings []Booking, excludeID string) (bool, error) {
	durationMinutes, ok := e.durations.DurationMinutes(treatmentID)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTreatment, treatmentID)
	}
	window := e.template.WindowsFor(date)
	if window.IsClosed() {
		return false, nil
	}
	inWindow, err := InOpeningWindow(start, window)
	if err != nil {
		return false, err
	}
	if !inWindow {
		return false, nil
	}
	return e.slotAccepts(start, durationMinutes, window, date, e.clock.Now(), bookings, excludeID)
}

// MaxFeasibleDuration tests the configured candidate durations against
// the predicate chain in descending preference order and returns the
// first that fits, letting the caller suggest a shorter treatment when
// the desired one does not fit. ok is false when none fits.
func (e *Engine) MaxFeasibleDuration(date time.Time, slot string, bookings []Booking) (int, bool, error) {
	window := e.template.WindowsFor(date)
	if window.IsClosed() {
		return 0, false, nil
	}
	now := e.clock.Now()
	for _, durationMinutes := range e.suggested {
		ok, err := e.slotAccepts(slot, durationMinutes, window, date, now, bookings, "")
		if err != nil {
			return 0, false, err
		}
		if ok {
			return durationMinutes, true, nil
		}
	}
	return 0, false, nil
}

// reportUnresolved surfaces bookings that reference a treatment id absent
// from the catalog. They never block other bookings, but they indicate
// upstream data corruption, so they go to logs and metrics rather than
// being swallowed.
func (e *Engine) reportUnresolved(ids []string) {
	for _, id := range ids {
		e.logger.Warn("booking references unknown treatment", "appointment_id", id)
		e.metrics.ObserveUnknownTreatment()
	}
}
