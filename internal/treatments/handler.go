package treatments

import (
	"encoding/json"
	"net/http"

	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

// Handler handles HTTP requests for the treatment menu
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

// NewHandler creates a new treatments handler
func NewHandler(catalog *Catalog, logger *logging.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListResponse is the response for listing treatments
type ListResponse struct {
	Treatments []Treatment `json:"treatments"`
	Count      int         `json:"count"`
}

// List handles GET /treatments requests. An optional category query
// param narrows the menu.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var items []Treatment
	if cat := r.URL.Query().Get("category"); cat != "" {
		items = h.catalog.ByCategory(Category(cat))
	} else {
		items = h.catalog.List()
	}
	if items == nil {
		items = []Treatment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Treatments: items, Count: len(items)})
}
