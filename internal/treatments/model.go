// Package treatments holds the center's treatment menu: immutable
// reference data looked up by id.
package treatments

import "errors"

// Category groups treatments for the menu.
type Category string

const (
	CategoryMassage  Category = "massage"
	CategoryFacial   Category = "facial"
	CategoryBody     Category = "body"
	CategoryWellness Category = "wellness"
)

// ErrTreatmentNotFound is returned when a treatment id is absent from the catalog.
var ErrTreatmentNotFound = errors.New("treatment not found")

// Treatment is one bookable service on the menu.
type Treatment struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	PriceCents      int      `json:"price_cents"`
	Category        Category `json:"category"`
}
