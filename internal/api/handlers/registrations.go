package handlers

import (
	"errors"
	"net/http"

	"github.com/campusconnect/server/internal/api/apierr"
	"github.com/campusconnect/server/internal/api/middleware"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/domain/registrations"
	"github.com/campusconnect/server/internal/metrics"
	"github.com/campusconnect/server/internal/validation"
)

// RegistrationsHandler serves event sign-ups. Creation is open to guests;
// per-event listings are admin-only and per-user listings require a session.
type RegistrationsHandler struct {
	Service *registrations.Service
	Env     string
}

func NewRegistrationsHandler(service *registrations.Service, env string) *RegistrationsHandler {
	return &RegistrationsHandler{Service: service, Env: env}
}

type createRegistrationRequest struct {
	EventID  int    `json:"eventId" validate:"required,gte=1"`
	FullName string `json:"fullName" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=32"`
	Tickets  int    `json:"tickets" validate:"required,gte=1,lte=10"`
}

func (h *RegistrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createRegistrationRequest
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}
	if err := validation.Struct(input); err != nil {
		apierr.BadRequest(w, r, err.Error(), nil, h.Env)
		return
	}

	userID := registrations.GuestUserID
	if account := middleware.AccountFromRequest(r); account != nil {
		userID = account.ID
	}

	registration, err := h.Service.Register(r.Context(), registrations.CreateParams{
		UserID:   userID,
		EventID:  input.EventID,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Tickets:  input.Tickets,
	})
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			apierr.NotFound(w, r, "Event not found", h.Env)
			return
		}
		apierr.Internal(w, r, err, h.Env)
		return
	}

	metrics.RegistrationsCreatedTotal.Inc()
	writeJSON(w, r, http.StatusCreated, registration)
}

func (h *RegistrationsHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		apierr.BadRequest(w, r, "Invalid event id", err, h.Env)
		return
	}

	items, err := h.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

// ListMine returns the registrations created under the caller's account.
// Guest registrations (userId 0) are reachable only via the admin listing.
func (h *RegistrationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromRequest(r)
	if account == nil {
		apierr.Write(w, r, http.StatusUnauthorized, "Authentication required", nil, h.Env)
		return
	}

	items, err := h.Service.ListByUser(r.Context(), account.ID)
	if err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}
