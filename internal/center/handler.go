package center

import (
	"encoding/json"
	"net/http"

	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

// Handler handles HTTP requests for the center settings
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new settings handler
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Get handles GET /settings requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// Update handles PUT /settings requests. The payload is validated before
// it replaces the stored settings; the engine picks the new working
// hours up on the next restart.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var settings Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := settings.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.store.Set(r.Context(), &settings); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	h.logger.Info("settings updated", "name", settings.Name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
