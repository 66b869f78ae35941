package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/campusconnect/server/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Service sends transactional email through the Resend API. When disabled it
// logs and returns without sending, so callers never need to special-case a
// deployment without email credentials.
type Service struct {
	cfg    config.EmailConfig
	client *resend.Client
	logger zerolog.Logger
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) *Service {
	s := &Service{
		cfg:    cfg,
		logger: logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled {
		s.client = resend.NewClient(cfg.APIKey)
	}
	return s
}

// ConfirmationData holds template data for the registration confirmation.
type ConfirmationData struct {
	FullName   string
	EventTitle string
	Tickets    int
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
  <p>Hi {{.FullName}},</p>
  <p>Your registration for <strong>{{.EventTitle}}</strong> is confirmed
  ({{.Tickets}} ticket{{if ne .Tickets 1}}s{{end}}).</p>
  <p>See you there!</p>
</body>
</html>`))

// SendRegistrationConfirmation emails a confirmation for a new event
// registration. Callers treat failures as non-fatal.
func (s *Service) SendRegistrationConfirmation(ctx context.Context, to string, data ConfirmationData) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.cfg.Enabled {
		s.logger.Debug().
			Str("to", to).
			Str("event", data.EventTitle).
			Msg("email service disabled, skipping confirmation")
		return nil
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render confirmation template: %w", err)
	}

	subject := fmt.Sprintf("Registration confirmed: %s", data.EventTitle)
	if err := s.send(ctx, to, subject, body.String()); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	s.logger.Info().Str("to", to).Str("event", data.EventTitle).Msg("confirmation email sent")
	return nil
}

func (s *Service) send(ctx context.Context, to, subject, htmlBody string) error {
	if s.client == nil {
		return fmt.Errorf("resend client not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Debug().Str("email_id", sent.Id).Msg("email accepted by resend")
	return nil
}

// validateEmailAddress rejects malformed addresses and header injection
// attempts before anything reaches the mail API.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("email address contains newline characters")
	}
	return nil
}
