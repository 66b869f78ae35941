package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusconnect/server/internal/sanitize"
	"github.com/rs/zerolog"
)

// Filters narrows a listing. Category is exact-match ("" or CategoryAll mean
// no filtering); Query is a case-insensitive substring match over title or
// description, applied after the category filter.
type Filters struct {
	Category string
	Query    string
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func (s *Service) List(ctx context.Context, filters Filters) ([]Event, error) {
	var (
		items []Event
		err   error
	)
	if filters.Category != "" {
		items, err = s.repo.ListByCategory(ctx, filters.Category)
	} else {
		items, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(filters.Query))
	if query == "" {
		return items, nil
	}

	matched := make([]Event, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *Service) Featured(ctx context.Context) ([]Event, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a new event. Text fields are sanitized before storage:
// titles, venues and organizers are stripped to plain text, descriptions may
// keep basic formatting tags.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	params.Title = sanitize.Text(params.Title)
	params.Description = sanitize.HTML(params.Description)
	params.Venue = sanitize.Text(params.Venue)
	params.Organizer = sanitize.Text(params.Organizer)

	event, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info().Int("event_id", event.ID).Str("title", event.Title).Msg("event created")
	return event, nil
}

// Update applies a partial update. Only fields present in params are
// sanitized and replaced; everything else is left untouched.
func (s *Service) Update(ctx context.Context, id int, params UpdateParams) (*Event, error) {
	if params.Title != nil {
		clean := sanitize.Text(*params.Title)
		params.Title = &clean
	}
	if params.Description != nil {
		clean := sanitize.HTML(*params.Description)
		params.Description = &clean
	}
	if params.Venue != nil {
		clean := sanitize.Text(*params.Venue)
		params.Venue = &clean
	}
	if params.Organizer != nil {
		clean := sanitize.Text(*params.Organizer)
		params.Organizer = &clean
	}

	event, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("event_id", event.ID).Msg("event updated")
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	if removed {
		s.logger.Info().Int("event_id", id).Msg("event deleted")
	}
	return removed, nil
}
