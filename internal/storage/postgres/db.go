// Package postgres implements the storage repository over pgx. It is the
// persistent alternative to the in-memory store and is selected when
// DATABASE_URL is configured. Entity ids come from per-table sequences, so
// ascending id order is insertion order here too.
package postgres

import (
	"context"
	"fmt"

	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/domain/registrations"
	"github.com/campusconnect/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Accounts() accounts.Repository {
	return &AccountRepository{pool: r.pool}
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{pool: r.pool}
}

func (r *Repository) Registrations() registrations.Repository {
	return &RegistrationRepository{pool: r.pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

type EventRepository struct {
	pool *pgxpool.Pool
}

type RegistrationRepository struct {
	pool *pgxpool.Pool
}
