package storage

import (
	"context"

	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/domain/registrations"
)

// Repository groups data access by domain. Two adapters exist: the default
// in-memory store and a postgres store selected by DATABASE_URL.
type Repository interface {
	Accounts() accounts.Repository
	Events() events.Repository
	Registrations() registrations.Repository

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
