package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Francescodib/armonia-scheduler/internal/treatments"
	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

// Handler handles HTTP requests for appointments and availability
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /appointments requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// Update handles PUT /appointments/{id} requests
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// Cancel handles POST /appointments/{id}/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	appt, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// Delete handles DELETE /appointments/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /appointments/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	appt, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// ListResponse is the response for listing appointments
type ListResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
}

// List handles GET /appointments requests. An optional date query param
// narrows the listing to a single day.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		appts []*Appointment
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		if _, perr := time.Parse(DateLayout, date); perr != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		appts, err = h.service.ListByDate(r.Context(), date)
	} else {
		appts, err = h.service.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	if appts == nil {
		appts = []*Appointment{}
	}

	writeJSON(w, http.StatusOK, ListResponse{Appointments: appts, Count: len(appts)})
}

// AvailabilityResponse is the response for the availability query
type AvailabilityResponse struct {
	Date        string   `json:"date"`
	TreatmentID string   `json:"treatment_id"`
	Slots       []string `json:"slots"`
}

// Availability handles GET /availability requests. Required query params:
// date and treatment_id. An optional exclude_id names the appointment
// being edited so its own slot stays offered.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	treatmentID := r.URL.Query().Get("treatment_id")
	if dateStr == "" || treatmentID == "" {
		http.Error(w, "date and treatment_id are required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	excludeID := r.URL.Query().Get("exclude_id")

	slots, err := h.service.AvailableSlots(r.Context(), date, treatmentID, excludeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Date:        dateStr,
		TreatmentID: treatmentID,
		Slots:       slots,
	})
}

// GridResponse is the response for the day grid query
type GridResponse struct {
	Date  string     `json:"date"`
	Slots []SlotInfo `json:"slots"`
}

// Grid handles GET /slots requests, returning the annotated grid the
// calendar view renders for one day.
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	grid, err := h.service.DayGrid(r.Context(), date)
	if err != nil {
		h.logger.Error("failed to build day grid", "error", err, "date", dateStr)
		http.Error(w, "failed to build day grid", http.StatusInternalServerError)
		return
	}
	if grid == nil {
		grid = []SlotInfo{}
	}

	writeJSON(w, http.StatusOK, GridResponse{Date: dateStr, Slots: grid})
}

// Stats handles GET /stats requests
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", "error", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// writeError maps service errors onto HTTP statuses. Validation failures
// carry their field map so the form can highlight inputs.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verrs,
		})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, treatments.ErrTreatmentNotFound):
		http.Error(w, "unknown treatment", http.StatusUnprocessableEntity)
	case errors.Is(err, ErrSlotUnavailable):
		http.Error(w, "slot is no longer available", http.StatusConflict)
	case errors.Is(err, ErrPastSlot):
		http.Error(w, "slot is in the past", http.StatusConflict)
	default:
		h.logger.Error("appointment request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
