package api

import (
	"net/http"

	"github.com/campusconnect/server/internal/api/handlers"
	"github.com/campusconnect/server/internal/api/middleware"
	"github.com/campusconnect/server/internal/auth"
	"github.com/campusconnect/server/internal/config"
	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/domain/registrations"
	"github.com/campusconnect/server/internal/email"
	"github.com/campusconnect/server/internal/metrics"
	"github.com/campusconnect/server/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Dependencies carries the shared state the router wires into handlers.
// The store is injected rather than constructed here so tests can run the
// full HTTP surface against the in-memory adapter.
type Dependencies struct {
	Repo     storage.Repository
	Sessions *auth.Manager
	Emailer  *email.Service
	Version  string
}

// NewRouter assembles the full HTTP handler: domain services, route table
// and the middleware chain.
func NewRouter(cfg config.Config, logger zerolog.Logger, deps Dependencies) http.Handler {
	env := cfg.Environment

	accountsService := accounts.NewService(deps.Repo.Accounts(), logger)
	eventsService := events.NewService(deps.Repo.Events(), logger)
	registrationsService := registrations.NewService(deps.Repo.Registrations(), deps.Repo.Events(), deps.Emailer, logger)

	authHandler := handlers.NewAuthHandler(accountsService, deps.Sessions, cfg.Session.CookieSecure, env)
	eventsHandler := handlers.NewEventsHandler(eventsService, env)
	registrationsHandler := handlers.NewRegistrationsHandler(registrationsService, env)
	healthHandler := handlers.NewHealthHandler(deps.Repo, deps.Version)

	requireAuth := middleware.RequireAuth(env)
	requireAdmin := middleware.RequireAdmin(env)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.Handle("GET /api/user", requireAuth(http.HandlerFunc(authHandler.CurrentUser)))

	mux.HandleFunc("GET /api/events", eventsHandler.List)
	mux.HandleFunc("GET /api/events/featured", eventsHandler.Featured)
	mux.HandleFunc("GET /api/events/{id}", eventsHandler.Get)
	mux.Handle("POST /api/events", requireAdmin(http.HandlerFunc(eventsHandler.Create)))
	mux.Handle("PUT /api/events/{id}", requireAdmin(http.HandlerFunc(eventsHandler.Update)))
	mux.Handle("PATCH /api/events/{id}", requireAdmin(http.HandlerFunc(eventsHandler.Update)))
	mux.Handle("DELETE /api/events/{id}", requireAdmin(http.HandlerFunc(eventsHandler.Delete)))

	mux.HandleFunc("POST /api/registrations", registrationsHandler.Create)
	mux.Handle("GET /api/registrations/event/{eventId}", requireAdmin(http.HandlerFunc(registrationsHandler.ListByEvent)))
	mux.Handle("GET /api/registrations/user", requireAuth(http.HandlerFunc(registrationsHandler.ListMine)))

	// Middleware chain, innermost listed first.
	var handler http.Handler = mux
	handler = middleware.SessionAuth(deps.Sessions, accountsService)(handler)
	if cfg.CSRF.Enabled {
		handler = middleware.CSRFProtection([]byte(cfg.CSRF.AuthKey), cfg.Session.CookieSecure)(handler)
	}
	handler = middleware.RequestSize(middleware.DefaultMaxBodySize)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.SecurityHeaders(env == "production")(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)

	return handler
}
