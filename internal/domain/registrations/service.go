package registrations

import (
	"context"
	"fmt"
	"time"

	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/email"
	"github.com/rs/zerolog"
)

type Service struct {
	repo    Repository
	events  events.Repository
	emailer *email.Service
	logger  zerolog.Logger
}

func NewService(repo Repository, eventsRepo events.Repository, emailer *email.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		events:  eventsRepo,
		emailer: emailer,
		logger:  logger.With().Str("component", "registrations").Logger(),
	}
}

// Register creates a registration for an existing event. The event lookup
// and the insert are two separate store calls; a concurrent event deletion
// between them is tolerated and simply leaves an orphaned registration.
// Returns events.ErrNotFound when the event does not exist.
func (s *Service) Register(ctx context.Context, params CreateParams) (*Registration, error) {
	event, err := s.events.GetByID(ctx, params.EventID)
	if err != nil {
		return nil, err
	}

	if params.RegistrationDate.IsZero() {
		params.RegistrationDate = time.Now().UTC()
	}

	registration, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.logger.Info().
		Int("registration_id", registration.ID).
		Int("event_id", event.ID).
		Int("user_id", registration.UserID).
		Int("tickets", registration.Tickets).
		Msg("registration created")

	// Confirmation email is best-effort; a mail failure never fails the
	// registration itself.
	if s.emailer != nil {
		data := email.ConfirmationData{
			FullName:   registration.FullName,
			EventTitle: event.Title,
			Tickets:    registration.Tickets,
		}
		if err := s.emailer.SendRegistrationConfirmation(ctx, registration.Email, data); err != nil {
			s.logger.Warn().Err(err).Int("registration_id", registration.ID).Msg("confirmation email failed")
		}
	}

	return registration, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Registration, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByEvent(ctx context.Context, eventID int) ([]Registration, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]Registration, error) {
	return s.repo.ListByUser(ctx, userID)
}
