package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/campusconnect/server/internal/api/apierr"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/validation"
)

// EventsHandler serves the public event catalog and the admin mutations.
type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := events.Filters{
		Category: query.Get("category"),
		Query:    query.Get("search"),
	}

	items, err := h.Service.List(r.Context(), filters)
	if err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *EventsHandler) Featured(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Featured(r.Context())
	if err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.BadRequest(w, r, "Invalid event id", err, h.Env)
		return
	}

	event, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			apierr.NotFound(w, r, "Event not found", h.Env)
			return
		}
		apierr.Internal(w, r, err, h.Env)
		return
	}
	writeJSON(w, r, http.StatusOK, event)
}

type createEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Venue       string `json:"venue" validate:"required,max=200"`
	Date        string `json:"date" validate:"required"`
	EndDate     string `json:"endDate"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category" validate:"required"`
	Featured    bool   `json:"featured"`
	Organizer   string `json:"organizer"`
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createEventRequest
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}
	if err := validation.Struct(input); err != nil {
		apierr.BadRequest(w, r, err.Error(), nil, h.Env)
		return
	}
	if !events.ValidCategory(input.Category) {
		apierr.BadRequest(w, r, "category must be one of: Academic, Cultural, Sports, Technical", nil, h.Env)
		return
	}

	date, err := events.ParseTimestamp(input.Date)
	if err != nil {
		apierr.BadRequest(w, r, "date must be an ISO-8601 timestamp", err, h.Env)
		return
	}

	var endDate *time.Time
	if input.EndDate != "" {
		parsed, err := events.ParseTimestamp(input.EndDate)
		if err != nil {
			apierr.BadRequest(w, r, "endDate must be an ISO-8601 timestamp", err, h.Env)
			return
		}
		if parsed.Before(date) {
			apierr.BadRequest(w, r, "endDate must not be before date", nil, h.Env)
			return
		}
		endDate = &parsed
	}

	event, err := h.Service.Create(r.Context(), events.CreateParams{
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		Date:        date,
		EndDate:     endDate,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Featured:    input.Featured,
		Organizer:   input.Organizer,
	})
	if err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}

	writeJSON(w, r, http.StatusCreated, event)
}

// updateEventRequest carries a partial update. EndDate is raw JSON so the
// handler can tell an absent field (leave unchanged) from an explicit null
// (clear the field).
type updateEventRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Venue       *string         `json:"venue"`
	Date        *string         `json:"date"`
	EndDate     json.RawMessage `json:"endDate"`
	ImageURL    *string         `json:"imageUrl"`
	Category    *string         `json:"category"`
	Featured    *bool           `json:"featured"`
	Organizer   *string         `json:"organizer"`
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.BadRequest(w, r, "Invalid event id", err, h.Env)
		return
	}

	var input updateEventRequest
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}

	params := events.UpdateParams{
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Featured:    input.Featured,
		Organizer:   input.Organizer,
	}

	if input.Category != nil && !events.ValidCategory(*input.Category) {
		apierr.BadRequest(w, r, "category must be one of: Academic, Cultural, Sports, Technical", nil, h.Env)
		return
	}

	if input.Date != nil {
		date, err := events.ParseTimestamp(*input.Date)
		if err != nil {
			apierr.BadRequest(w, r, "date must be an ISO-8601 timestamp", err, h.Env)
			return
		}
		params.Date = &date
	}

	if len(input.EndDate) > 0 {
		if bytes.Equal(bytes.TrimSpace(input.EndDate), []byte("null")) {
			params.EndDate = events.OptionalTime{Set: true}
		} else {
			var raw string
			if err := json.Unmarshal(input.EndDate, &raw); err != nil {
				apierr.BadRequest(w, r, "endDate must be an ISO-8601 string or null", err, h.Env)
				return
			}
			parsed, err := events.ParseTimestamp(raw)
			if err != nil {
				apierr.BadRequest(w, r, "endDate must be an ISO-8601 timestamp", err, h.Env)
				return
			}
			params.EndDate = events.OptionalTime{Set: true, Valid: true, Time: parsed}
		}
	}

	// Touching either side of the date pair can invert it against the stored
	// counterpart, so check the merged result rather than the payload alone.
	if params.Date != nil || (params.EndDate.Set && params.EndDate.Valid) {
		current, err := h.Service.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, events.ErrNotFound) {
				apierr.NotFound(w, r, "Event not found", h.Env)
				return
			}
			apierr.Internal(w, r, err, h.Env)
			return
		}
		merged := events.Merge(*current, params)
		if merged.EndDate != nil && merged.EndDate.Before(merged.Date) {
			apierr.BadRequest(w, r, "endDate must not be before date", nil, h.Env)
			return
		}
	}

	event, err := h.Service.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			apierr.NotFound(w, r, "Event not found", h.Env)
			return
		}
		apierr.Internal(w, r, err, h.Env)
		return
	}

	writeJSON(w, r, http.StatusOK, event)
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.BadRequest(w, r, "Invalid event id", err, h.Env)
		return
	}

	removed, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}
	if !removed {
		apierr.NotFound(w, r, "Event not found", h.Env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
