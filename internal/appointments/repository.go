package appointments

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for appointment storage. The
// collection lives in memory for the lifetime of the process; the engine
// only ever reads it.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	ListByDate(ctx context.Context, date string) ([]*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
}

// InMemoryRepository stores appointments in a mutex-guarded map. Reads
// hand out copies, so an availability computation always works against a
// point-in-time snapshot that later writes cannot disturb.
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*Appointment
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{appointments: make(map[string]*Appointment)}
}

// Create stores a new appointment.
func (r *InMemoryRepository) Create(ctx context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	r.appointments[a.ID] = &clone
	return nil
}

// Update replaces an existing appointment.
func (r *InMemoryRepository) Update(ctx context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[a.ID]; !ok {
		return ErrNotFound
	}
	clone := *a
	r.appointments[a.ID] = &clone
	return nil
}

// Delete removes an appointment outright.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

// GetByID retrieves an appointment by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *a
	return &clone, nil
}

// ListByDate returns the appointments on a calendar date, sorted by
// start time.
func (r *InMemoryRepository) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Appointment
	for _, a := range r.appointments {
		if a.Date == date {
			clone := *a
			out = append(out, &clone)
		}
	}
	sortByStart(out)
	return out, nil
}

// List returns every appointment, sorted by date then start time.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

// Zero-padded "HH:MM" sorts correctly as a string.
func sortByStart(items []*Appointment) {
	sort.Slice(items, func(i, j int) bool { return items[i].StartTime < items[j].StartTime })
}
