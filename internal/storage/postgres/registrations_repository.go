package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusconnect/server/internal/domain/registrations"
	"github.com/jackc/pgx/v5"
)

var _ registrations.Repository = (*RegistrationRepository)(nil)

const registrationColumns = `id, user_id, event_id, full_name, email, phone, tickets, registration_date`

func (r *RegistrationRepository) GetByID(ctx context.Context, id int) (*registrations.Registration, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
	return scanRegistration(row)
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int) ([]registrations.Registration, error) {
	return r.list(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 ORDER BY id`, eventID)
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int) ([]registrations.Registration, error) {
	return r.list(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *RegistrationRepository) Create(ctx context.Context, params registrations.CreateParams) (*registrations.Registration, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO registrations (user_id, event_id, full_name, email, phone, tickets, registration_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+registrationColumns,
		params.UserID,
		params.EventID,
		params.FullName,
		params.Email,
		params.Phone,
		params.Tickets,
		params.RegistrationDate.UTC(),
	)

	registration, err := scanRegistration(row)
	if err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return registration, nil
}

func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM registrations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) list(ctx context.Context, query string, args ...any) ([]registrations.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	items := make([]registrations.Registration, 0)
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return items, nil
}

func scanRegistration(row pgx.Row) (*registrations.Registration, error) {
	var registration registrations.Registration
	err := row.Scan(
		&registration.ID,
		&registration.UserID,
		&registration.EventID,
		&registration.FullName,
		&registration.Email,
		&registration.Phone,
		&registration.Tickets,
		&registration.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registrations.ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	registration.RegistrationDate = registration.RegistrationDate.UTC()
	return &registration, nil
}
