// Package appointments owns the in-memory appointment collection and its
// lifecycle: creation, edits, soft cancellation and deletion, each
// re-validated against the schedule engine.
package appointments

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Francescodib/armonia-scheduler/internal/schedule"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

// Status tracks an appointment through its lifecycle. Pending and
// confirmed move freely between each other; cancelled preserves history
// instead of destroying the record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Appointment is one booked treatment. The end time is never stored; it
// is derived from the start time and the treatment duration on every
// read, so editing either can never leave a stale end time behind.
type Appointment struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email"`
	TreatmentID string    `json:"treatment_id"`
	Date        string    `json:"date"`       // DateLayout
	StartTime   string    `json:"start_time"` // "HH:MM"
	Notes       string    `json:"notes,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Booking projects the appointment into the conflict detector's shape.
func (a *Appointment) Booking() schedule.Booking {
	return schedule.Booking{ID: a.ID, StartTime: a.StartTime, TreatmentID: a.TreatmentID}
}

// EndTime derives the end of the appointment from its treatment's
// duration. ok is false when the treatment id cannot be resolved.
func (a *Appointment) EndTime(durations schedule.DurationLookup) (string, bool) {
	minutes, ok := durations.DurationMinutes(a.TreatmentID)
	if !ok {
		return "", false
	}
	end, err := schedule.AddMinutes(a.StartTime, minutes)
	if err != nil {
		return "", false
	}
	return end, true
}

// UpsertRequest is the form payload for creating or editing an
// appointment. Status defaults to confirmed when empty.
type UpsertRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	TreatmentID string `json:"treatment_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Notes       string `json:"notes"`
	Status      Status `json:"status"`
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate checks the form fields and collects every problem as a
// field-level message rather than stopping at the first.
func (r *UpsertRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.ClientName) == "" {
		errs["client_name"] = "client name is required"
	}
	if strings.TrimSpace(r.ClientPhone) == "" {
		errs["client_phone"] = "phone is required"
	}
	email := strings.TrimSpace(r.ClientEmail)
	switch {
	case email == "":
		errs["client_email"] = "email is required"
	case !emailPattern.MatchString(email):
		errs["client_email"] = "email is not valid"
	}
	if r.TreatmentID == "" {
		errs["treatment_id"] = "select a treatment"
	}
	if r.Date == "" {
		errs["date"] = "select a date"
	} else if _, err := time.Parse(DateLayout, r.Date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if r.StartTime == "" {
		errs["start_time"] = "select a time"
	} else if _, err := schedule.ParseClock(r.StartTime); err != nil {
		errs["start_time"] = "time must be HH:MM"
	}
	if r.Status != "" && !r.Status.Valid() {
		errs["status"] = "unknown status"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidationErrors maps field names to their problems. It implements
// error so the service can return it through the normal error path.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}
