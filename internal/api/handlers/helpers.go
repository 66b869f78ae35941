package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/campusconnect/server/internal/api/apierr"
	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
	}
}

// pathID parses the named path parameter as a positive integer id.
func pathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id: " + raw)
	}
	return id, nil
}

// decodeJSON decodes the request body into dst, mapping an oversized body to
// 413 and everything else to 400. Returns false after writing the error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, env string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			apierr.Write(w, r, http.StatusRequestEntityTooLarge, "Request body too large", err, env)
			return false
		}
		apierr.BadRequest(w, r, "Invalid request body", err, env)
		return false
	}
	return true
}
