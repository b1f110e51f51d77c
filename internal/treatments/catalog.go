package treatments

import (
	"fmt"
	"sort"
)

// Catalog is an immutable id-keyed treatment lookup. It implements the
// schedule engine's DurationLookup.
type Catalog struct {
	byID  map[string]Treatment
	order []string
}

// NewCatalog builds a catalog, rejecting duplicate ids and non-positive
// durations up front so bad reference data fails at startup.
func NewCatalog(items []Treatment) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Treatment, len(items))}
	for _, t := range items {
		if t.ID == "" {
			return nil, fmt.Errorf("treatments: empty id for %q", t.Name)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("treatments: duplicate id %q", t.ID)
		}
		if t.DurationMinutes <= 0 {
			return nil, fmt.Errorf("treatments: %q: duration must be positive, got %d", t.ID, t.DurationMinutes)
		}
		c.byID[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	return c, nil
}

// Get returns the treatment for an id.
func (c *Catalog) Get(id string) (Treatment, error) {
	t, ok := c.byID[id]
	if !ok {
		return Treatment{}, fmt.Errorf("%w: %q", ErrTreatmentNotFound, id)
	}
	return t, nil
}

// DurationMinutes resolves a treatment id to its duration, satisfying
// schedule.DurationLookup.
func (c *Catalog) DurationMinutes(id string) (int, bool) {
	t, ok := c.byID[id]
	if !ok {
		return 0, false
	}
	return t.DurationMinutes, true
}

// List returns the menu in insertion order.
func (c *Catalog) List() []Treatment {
	out := make([]Treatment, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByCategory returns the menu entries of one category, sorted by name.
func (c *Catalog) ByCategory(cat Category) []Treatment {
	var out []Treatment
	for _, id := range c.order {
		if t := c.byID[id]; t.Category == cat {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultCatalog returns the production menu.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]Treatment{
		{ID: "relaxing-massage", Name: "Relaxing Massage", DurationMinutes: 60, PriceCents: 8000, Category: CategoryMassage},
		{ID: "sports-massage", Name: "Sports Massage", DurationMinutes: 45, PriceCents: 7000, Category: CategoryMassage},
		{ID: "facial-treatment", Name: "Facial Treatment", DurationMinutes: 30, PriceCents: 5000, Category: CategoryFacial},
		{ID: "body-treatment", Name: "Body Treatment", DurationMinutes: 90, PriceCents: 12000, Category: CategoryBody},
		{ID: "sauna", Name: "Sauna", DurationMinutes: 45, PriceCents: 4000, Category: CategoryWellness},
	})
	if err != nil {
		panic(err) // static data, cannot fail
	}
	return c
}
