package memory

import (
	"context"

	"github.com/campusconnect/server/internal/domain/registrations"
)

type registrationRepository struct {
	store *Store
}

var _ registrations.Repository = (*registrationRepository)(nil)

func (r *registrationRepository) GetByID(_ context.Context, id int) (*registrations.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	registration, ok := r.store.registrations[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	return &registration, nil
}

func (r *registrationRepository) ListByEvent(_ context.Context, eventID int) ([]registrations.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(func(reg registrations.Registration) bool { return reg.EventID == eventID }), nil
}

func (r *registrationRepository) ListByUser(_ context.Context, userID int) ([]registrations.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(func(reg registrations.Registration) bool { return reg.UserID == userID }), nil
}

func (r *registrationRepository) Create(_ context.Context, params registrations.CreateParams) (*registrations.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	registration := registrations.Registration{
		ID:               r.store.nextRegistrationID,
		UserID:           params.UserID,
		EventID:          params.EventID,
		FullName:         params.FullName,
		Email:            params.Email,
		Phone:            params.Phone,
		Tickets:          params.Tickets,
		RegistrationDate: params.RegistrationDate.UTC(),
	}
	r.store.nextRegistrationID++
	r.store.registrations[registration.ID] = registration
	return &registration, nil
}

func (r *registrationRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.registrations), nil
}

func (r *registrationRepository) listLocked(keep func(registrations.Registration) bool) []registrations.Registration {
	items := make([]registrations.Registration, 0, len(r.store.registrations))
	for _, id := range sortedKeys(r.store.registrations) {
		if registration := r.store.registrations[id]; keep(registration) {
			items = append(items, registration)
		}
	}
	return items
}
