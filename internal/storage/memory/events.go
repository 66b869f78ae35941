package memory

import (
	"context"

	"github.com/campusconnect/server/internal/domain/events"
)

type eventRepository struct {
	store *Store
}

var _ events.Repository = (*eventRepository)(nil)

func (r *eventRepository) GetByID(_ context.Context, id int) (*events.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	event, ok := r.store.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	return &event, nil
}

func (r *eventRepository) List(_ context.Context) ([]events.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(func(events.Event) bool { return true }), nil
}

func (r *eventRepository) ListByCategory(_ context.Context, category string) ([]events.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if category == events.CategoryAll {
		return r.listLocked(func(events.Event) bool { return true }), nil
	}
	return r.listLocked(func(e events.Event) bool { return e.Category == category }), nil
}

func (r *eventRepository) ListFeatured(_ context.Context) ([]events.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(func(e events.Event) bool { return e.Featured }), nil
}

func (r *eventRepository) Create(_ context.Context, params events.CreateParams) (*events.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event := events.Event{
		ID:          r.store.nextEventID,
		Title:       params.Title,
		Description: params.Description,
		Venue:       params.Venue,
		Date:        params.Date.UTC(),
		ImageURL:    params.ImageURL,
		Category:    params.Category,
		Featured:    params.Featured,
		Organizer:   params.Organizer,
	}
	if params.EndDate != nil {
		end := params.EndDate.UTC()
		event.EndDate = &end
	}

	r.store.nextEventID++
	r.store.events[event.ID] = event
	return &event, nil
}

func (r *eventRepository) Update(_ context.Context, id int, params events.UpdateParams) (*events.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}

	merged := events.Merge(current, params)
	r.store.events[id] = merged
	return &merged, nil
}

func (r *eventRepository) Delete(_ context.Context, id int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[id]; !ok {
		return false, nil
	}
	delete(r.store.events, id)
	return true, nil
}

func (r *eventRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.events), nil
}

// listLocked collects events matching keep in insertion order. Callers hold
// at least a read lock.
func (r *eventRepository) listLocked(keep func(events.Event) bool) []events.Event {
	items := make([]events.Event, 0, len(r.store.events))
	for _, id := range sortedKeys(r.store.events) {
		if event := r.store.events[id]; keep(event) {
			items = append(items, event)
		}
	}
	return items
}
