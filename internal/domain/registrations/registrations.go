package registrations

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("registration not found")

// GuestUserID marks a registration created without an authenticated session.
const GuestUserID = 0

type Registration struct {
	ID               int       `json:"id"`
	UserID           int       `json:"userId"`
	EventID          int       `json:"eventId"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Tickets          int       `json:"tickets"`
	RegistrationDate time.Time `json:"registrationDate"`
}

type CreateParams struct {
	UserID           int
	EventID          int
	FullName         string
	Email            string
	Phone            string
	Tickets          int
	RegistrationDate time.Time
}

// Repository is the registrations data-access contract. Registrations are
// write-once: created, listed, never updated or deleted. Event deletion does
// not cascade here; orphaned registrations are kept as an attendance record.
type Repository interface {
	GetByID(ctx context.Context, id int) (*Registration, error)
	ListByEvent(ctx context.Context, eventID int) ([]Registration, error)
	ListByUser(ctx context.Context, userID int) ([]Registration, error)
	Create(ctx context.Context, params CreateParams) (*Registration, error)
	Count(ctx context.Context) (int, error)
}
