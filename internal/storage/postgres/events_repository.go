package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusconnect/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
)

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `id, title, description, venue, date, end_date, image_url, category, featured, organizer`

func (r *EventRepository) GetByID(ctx context.Context, id int) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
}

func (r *EventRepository) ListByCategory(ctx context.Context, category string) ([]events.Event, error) {
	if category == events.CategoryAll {
		return r.List(ctx)
	}
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE category = $1 ORDER BY id`, category)
}

func (r *EventRepository) ListFeatured(ctx context.Context) ([]events.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE featured ORDER BY id`)
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO events (title, description, venue, date, end_date, image_url, category, featured, organizer)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+eventColumns,
		params.Title,
		params.Description,
		params.Venue,
		params.Date.UTC(),
		utcOrNil(params.EndDate),
		params.ImageURL,
		params.Category,
		params.Featured,
		params.Organizer,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Update merges params over the current row inside a transaction so that
// partial-update semantics match the in-memory adapter exactly.
func (r *EventRepository) Update(ctx context.Context, id int, params events.UpdateParams) (*events.Event, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
	current, err := scanEvent(row)
	if err != nil {
		return nil, err
	}

	merged := events.Merge(*current, params)

	row = tx.QueryRow(ctx, `
UPDATE events
   SET title = $2, description = $3, venue = $4, date = $5, end_date = $6,
       image_url = $7, category = $8, featured = $9, organizer = $10
 WHERE id = $1
RETURNING `+eventColumns,
		id,
		merged.Title,
		merged.Description,
		merged.Venue,
		merged.Date,
		merged.EndDate,
		merged.ImageURL,
		merged.Category,
		merged.Featured,
		merged.Organizer,
	)

	updated, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Venue,
		&event.Date,
		&event.EndDate,
		&event.ImageURL,
		&event.Category,
		&event.Featured,
		&event.Organizer,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	event.Date = event.Date.UTC()
	if event.EndDate != nil {
		end := event.EndDate.UTC()
		event.EndDate = &end
	}
	return &event, nil
}

func utcOrNil(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
