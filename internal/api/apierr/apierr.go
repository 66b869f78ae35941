// Package apierr writes the API's JSON error envelope. Every error response
// has the shape {"message": "..."}; in development and test environments a
// "detail" field carries the underlying error for debugging.
package apierr

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type body struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Write emits the error envelope and logs through the request-scoped logger:
// 5xx at error level, 4xx at warn. message is the client-facing text; err is
// the underlying cause and may be nil.
func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	payload := body{Message: message}
	if err != nil && (env == "development" || env == "test") {
		payload.Detail = err.Error()
	}

	if r != nil && status >= 400 {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(payload); encodeErr != nil && r != nil {
		zerolog.Ctx(r.Context()).Error().Err(encodeErr).Msg("encode error response")
	}
}

// NotFound writes the standard 404 envelope.
func NotFound(w http.ResponseWriter, r *http.Request, message string, env string) {
	Write(w, r, http.StatusNotFound, message, nil, env)
}

// BadRequest writes a 400 with the given client-facing message.
func BadRequest(w http.ResponseWriter, r *http.Request, message string, err error, env string) {
	Write(w, r, http.StatusBadRequest, message, err, env)
}

// Internal writes a 500 with a generic message so internal details never
// reach clients outside development.
func Internal(w http.ResponseWriter, r *http.Request, err error, env string) {
	Write(w, r, http.StatusInternalServerError, "internal server error", err, env)
}
