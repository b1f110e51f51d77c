package appointments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Service) {
	t.Helper()
	svc := newTestService(t, testNow)
	h := NewHandler(svc, logging.Default())

	r := chi.NewRouter()
	r.Post("/appointments", h.Create)
	r.Get("/appointments", h.List)
	r.Get("/appointments/{id}", h.Get)
	r.Put("/appointments/{id}", h.Update)
	r.Delete("/appointments/{id}", h.Delete)
	r.Post("/appointments/{id}/cancel", h.Cancel)
	r.Get("/availability", h.Availability)
	r.Get("/slots", h.Grid)
	r.Get("/stats", h.Stats)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerCreate(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/appointments", validRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var appt Appointment
	if err := json.NewDecoder(w.Body).Decode(&appt); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected appointment ID to be set")
	}
	if appt.Status != StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", appt.Status)
	}
}

func TestHandlerCreateInvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestHandlerCreateValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := validRequest()
	payload.ClientEmail = "nope"

	w := postJSON(t, r, "/appointments", payload)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := resp.Fields["client_email"]; !ok {
		t.Errorf("expected client_email in fields, got %v", resp.Fields)
	}
}

func TestHandlerCreateConflict(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := postJSON(t, r, "/appointments", validRequest()); w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", w.Code)
	}

	second := validRequest()
	second.StartTime = "10:30"
	w := postJSON(t, r, "/appointments", second)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestHandlerUpdateAndCancel(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/appointments", validRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", w.Code)
	}
	var appt Appointment
	json.NewDecoder(w.Body).Decode(&appt)

	payload := validRequest()
	payload.StartTime = "15:00"
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/appointments/"+appt.ID, bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	w = postJSON(t, r, fmt.Sprintf("/appointments/%s/cancel", appt.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var cancelled Appointment
	json.NewDecoder(w.Body).Decode(&cancelled)
	if cancelled.Status != StatusCancelled {
		t.Errorf("expected status cancelled, got %s", cancelled.Status)
	}
}

func TestHandlerGetNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/appointments/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/appointments", validRequest())
	var appt Appointment
	json.NewDecoder(w.Body).Decode(&appt)

	req := httptest.NewRequest(http.MethodDelete, "/appointments/"+appt.ID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/appointments/"+appt.ID, nil)
	w2 = httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected status %d after delete, got %d", http.StatusNotFound, w2.Code)
	}
}

func TestHandlerListByDate(t *testing.T) {
	r, _ := newTestRouter(t)

	first := validRequest()
	second := validRequest()
	second.StartTime = "15:00"
	third := validRequest()
	third.Date = "2025-12-09"
	for _, p := range []*UpsertRequest{first, second, third} {
		if w := postJSON(t, r, "/appointments", p); w.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/appointments?date=2025-12-08", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 appointments, got %d", resp.Count)
	}
}

func TestHandlerListBadDate(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/appointments?date=08-12-2025", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestHandlerAvailability(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := postJSON(t, r, "/appointments", validRequest()); w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/availability?date=2025-12-08&treatment_id=facial-treatment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp AvailabilityResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, slot := range resp.Slots {
		if slot == "10:00" || slot == "10:30" {
			t.Errorf("slot %s should be blocked by the 10:00 booking", slot)
		}
	}
}

func TestHandlerAvailabilityMissingParams(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/availability?date=2025-12-08", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestHandlerGrid(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/slots?date=2025-12-08", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp GridResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Slots) != 16 {
		t.Errorf("expected 16 slots on a full day, got %d", len(resp.Slots))
	}
}

func TestHandlerStats(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := postJSON(t, r, "/appointments", validRequest()); w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var stats Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Total != 1 {
		t.Errorf("expected total 1, got %d", stats.Total)
	}
}
