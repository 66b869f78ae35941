package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/campusconnect/server/internal/storage"
)

// HealthHandler serves liveness and readiness probes. Liveness is
// unconditional; readiness pings the backing store.
type HealthHandler struct {
	Repo    storage.Repository
	Version string
}

func NewHealthHandler(repo storage.Repository, version string) *HealthHandler {
	return &HealthHandler{Repo: repo, Version: version}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
	})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Ping(ctx); err != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": err.Error(),
		})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
