package email

import (
	"bytes"
	"testing"

	"github.com/campusconnect/server/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDisabledServiceSkipsSending(t *testing.T) {
	svc := NewService(config.EmailConfig{Enabled: false}, zerolog.Nop())

	err := svc.SendRegistrationConfirmation(t.Context(), "student@example.edu", ConfirmationData{
		FullName:   "Student",
		EventTitle: "Annual Tech Fest",
		Tickets:    2,
	})
	require.NoError(t, err)
}

func TestInvalidRecipientRejected(t *testing.T) {
	svc := NewService(config.EmailConfig{Enabled: false}, zerolog.Nop())

	err := svc.SendRegistrationConfirmation(t.Context(), "not-an-address", ConfirmationData{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid recipient email")
}

func TestHeaderInjectionRejected(t *testing.T) {
	require.Error(t, validateEmailAddress("a@b.com\r\nBcc: evil@example.com"))
	require.NoError(t, validateEmailAddress("a@b.com"))
}

func TestConfirmationTemplatePluralizesTickets(t *testing.T) {
	render := func(tickets int) string {
		var buf bytes.Buffer
		require.NoError(t, confirmationTemplate.Execute(&buf, ConfirmationData{
			FullName:   "Student",
			EventTitle: "Cultural Night",
			Tickets:    tickets,
		}))
		return buf.String()
	}

	require.Contains(t, render(1), "1 ticket)")
	require.Contains(t, render(3), "3 tickets)")
}
