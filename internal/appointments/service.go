package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Francescodib/armonia-scheduler/internal/observability/metrics"
	"github.com/Francescodib/armonia-scheduler/internal/schedule"
	"github.com/Francescodib/armonia-scheduler/internal/treatments"
	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

// Service wires the appointment collection to the availability engine.
// Every mutation re-validates the slot at submit time; the engine itself
// never touches the collection.
type Service struct {
	repo    Repository
	catalog *treatments.Catalog
	engine  *schedule.Engine
	clock   schedule.Clock
	logger  *logging.Logger
	metrics *metrics.SchedulingMetrics
}

// NewService creates the appointment service.
func NewService(repo Repository, catalog *treatments.Catalog, engine *schedule.Engine, clock schedule.Clock, logger *logging.Logger, m *metrics.SchedulingMetrics) *Service {
	if clock == nil {
		clock = schedule.SystemClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, catalog: catalog, engine: engine, clock: clock, logger: logger, metrics: m}
}

// Create validates the form payload, re-checks availability, and stores a
// new appointment with a fresh id and timestamps.
func (s *Service) Create(ctx context.Context, req *UpsertRequest) (*Appointment, error) {
	if errs := req.Validate(); errs != nil {
		s.metrics.ObserveMutation("create", "invalid")
		return nil, errs
	}
	if _, err := s.catalog.Get(req.TreatmentID); err != nil {
		s.metrics.ObserveMutation("create", "invalid")
		return nil, err
	}
	date, _ := time.Parse(DateLayout, req.Date)

	if err := s.checkSlot(ctx, date, req, ""); err != nil {
		s.metrics.ObserveMutation("create", "rejected")
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusConfirmed
	}
	now := s.clock.Now().UTC()
	a := &Appointment{
		ID:          uuid.NewString(),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		TreatmentID: req.TreatmentID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("appointments: create: %w", err)
	}

	s.logger.Info("appointment created",
		"id", a.ID,
		"date", a.Date,
		"start", a.StartTime,
		"treatment_id", a.TreatmentID,
	)
	s.metrics.ObserveMutation("create", "created")
	return a, nil
}

// Update edits an appointment in place. The id and creation timestamp
// survive; everything else is replaceable. The temporal gate and the
// availability check apply only when the appointment actually moves, and
// the check excludes the appointment itself so it never collides with
// its own old interval.
func (s *Service) Update(ctx context.Context, id string, req *UpsertRequest) (*Appointment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(); errs != nil {
		s.metrics.ObserveMutation("update", "invalid")
		return nil, errs
	}
	if _, err := s.catalog.Get(req.TreatmentID); err != nil {
		s.metrics.ObserveMutation("update", "invalid")
		return nil, err
	}
	date, _ := time.Parse(DateLayout, req.Date)

	moved := existing.Date != req.Date || existing.StartTime != req.StartTime || existing.TreatmentID != req.TreatmentID
	if moved {
		if err := s.checkSlot(ctx, date, req, id); err != nil {
			s.metrics.ObserveMutation("update", "rejected")
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = existing.Status
	}
	updated := &Appointment{
		ID:          existing.ID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		TreatmentID: req.TreatmentID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
		Status:      status,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("appointments: update: %w", err)
	}

	s.logger.Info("appointment updated", "id", id, "moved", moved)
	s.metrics.ObserveMutation("update", "updated")
	return updated, nil
}

// Cancel flips an appointment to cancelled, preserving its history. A
// cancelled appointment stops blocking other bookings but stays visible.
// Cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled {
		return a, nil
	}
	a.Status = StatusCancelled
	a.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("appointments: cancel: %w", err)
	}
	s.logger.Info("appointment cancelled", "id", id)
	s.metrics.ObserveMutation("cancel", "cancelled")
	return a, nil
}

// Delete removes an appointment outright.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", "id", id)
	s.metrics.ObserveMutation("delete", "deleted")
	return nil
}

// Get retrieves one appointment.
func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByDate returns the appointments on a date, earliest first.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	return s.repo.ListByDate(ctx, date)
}

// List returns the whole collection.
func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.repo.List(ctx)
}

// AvailableSlots answers which slots are currently offered for a
// treatment on a date. excludeID carries the appointment being edited.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time, treatmentID, excludeID string) ([]string, error) {
	bookings, err := s.bookingsOn(ctx, date.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	return s.engine.AvailableSlots(ctx, date, treatmentID, bookings, excludeID)
}

// SlotInfo is one cell of the day grid the calendar view renders.
type SlotInfo struct {
	Time               string `json:"time"`
	Bookable           bool   `json:"bookable"`
	MaxDurationMinutes int    `json:"max_duration_minutes"`
}

// DayGrid returns every slot of the day's opening hours annotated with
// whether anything at all could still be booked there and the longest
// suggested duration that fits. An empty grid means a closed day.
func (s *Service) DayGrid(ctx context.Context, date time.Time) ([]SlotInfo, error) {
	slots, err := s.engine.AllSlotsForDay(date)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingsOn(ctx, date.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	grid := make([]SlotInfo, 0, len(slots))
	for _, slot := range slots {
		maxDur, ok, err := s.engine.MaxFeasibleDuration(date, slot, bookings)
		if err != nil {
			return nil, err
		}
		// MaxFeasibleDuration already ran the full predicate chain, so a
		// hit means the slot is bookable right now.
		info := SlotInfo{Time: slot}
		if ok {
			info.Bookable = true
			info.MaxDurationMinutes = maxDur
		}
		grid = append(grid, info)
	}
	return grid, nil
}

// Stats summarizes the collection for the dashboard header.
type Stats struct {
	Today         int     `json:"today"`
	Total         int     `json:"total"`
	Confirmed     int     `json:"confirmed"`
	ConfirmedRate float64 `json:"confirmed_rate"`
}

// Stats counts today's appointments and the confirmed share of the whole
// collection. Cancelled appointments count toward the total but not the
// rate's numerator.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	today := s.clock.Now().Format(DateLayout)
	var st Stats
	for _, a := range all {
		st.Total++
		if a.Date == today && a.Status != StatusCancelled {
			st.Today++
		}
		if a.Status == StatusConfirmed {
			st.Confirmed++
		}
	}
	if st.Total > 0 {
		st.ConfirmedRate = float64(st.Confirmed) / float64(st.Total)
	}
	return st, nil
}

// checkSlot runs the temporal gate and the availability predicates for a
// create or a move.
func (s *Service) checkSlot(ctx context.Context, date time.Time, req *UpsertRequest, excludeID string) error {
	bookable, err := schedule.IsBookable(req.StartTime, date, s.clock.Now())
	if err != nil {
		return err
	}
	if !bookable {
		return ErrPastSlot
	}
	bookings, err := s.bookingsOn(ctx, req.Date)
	if err != nil {
		return err
	}
	available, err := s.engine.SlotAvailable(date, req.StartTime, req.TreatmentID, bookings, excludeID)
	if err != nil {
		return err
	}
	if !available {
		return ErrSlotUnavailable
	}
	return nil
}

// bookingsOn projects the date's non-cancelled appointments into the
// conflict detector's shape. Cancelled appointments never block.
func (s *Service) bookingsOn(ctx context.Context, date string) ([]schedule.Booking, error) {
	appts, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("appointments: list for %s: %w", date, err)
	}
	var bookings []schedule.Booking
	for _, a := range appts {
		if a.Status == StatusCancelled {
			continue
		}
		bookings = append(bookings, a.Booking())
	}
	return bookings, nil
}
