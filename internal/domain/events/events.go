package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

// Categories an event can be stored under. CategoryAll is a query-only
// pseudo-value: valid in a list filter, never on a persisted event.
const (
	CategoryAcademic  = "Academic"
	CategoryCultural  = "Cultural"
	CategorySports    = "Sports"
	CategoryTechnical = "Technical"
	CategoryAll       = "All"
)

// ValidCategory reports whether category may be stored on an event.
func ValidCategory(category string) bool {
	switch category {
	case CategoryAcademic, CategoryCultural, CategorySports, CategoryTechnical:
		return true
	}
	return false
}

type Event struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	Date        time.Time  `json:"date"`
	EndDate     *time.Time `json:"endDate"`
	ImageURL    string     `json:"imageUrl"`
	Category    string     `json:"category"`
	Featured    bool       `json:"featured"`
	Organizer   string     `json:"organizer"`
}

type CreateParams struct {
	Title       string
	Description string
	Venue       string
	Date        time.Time
	EndDate     *time.Time
	ImageURL    string
	Category    string
	Featured    bool
	Organizer   string
}

// OptionalTime distinguishes three update states for EndDate: absent from the
// payload (Set false), explicit null (Set true, Valid false, clears the
// field), and a value (Set true, Valid true).
type OptionalTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

// UpdateParams carries a partial update. Nil pointers leave the existing
// field unchanged; merging is shallow and last-write-wins.
type UpdateParams struct {
	Title       *string
	Description *string
	Venue       *string
	Date        *time.Time
	EndDate     OptionalTime
	ImageURL    *string
	Category    *string
	Featured    *bool
	Organizer   *string
}

// Merge applies params field-by-field over current and returns the merged
// event. Both storage adapters share this so partial-update semantics cannot
// drift between them.
func Merge(current Event, params UpdateParams) Event {
	merged := current
	if params.Title != nil {
		merged.Title = *params.Title
	}
	if params.Description != nil {
		merged.Description = *params.Description
	}
	if params.Venue != nil {
		merged.Venue = *params.Venue
	}
	if params.Date != nil {
		merged.Date = params.Date.UTC()
	}
	if params.EndDate.Set {
		if params.EndDate.Valid {
			value := params.EndDate.Time.UTC()
			merged.EndDate = &value
		} else {
			merged.EndDate = nil
		}
	}
	if params.ImageURL != nil {
		merged.ImageURL = *params.ImageURL
	}
	if params.Category != nil {
		merged.Category = *params.Category
	}
	if params.Featured != nil {
		merged.Featured = *params.Featured
	}
	if params.Organizer != nil {
		merged.Organizer = *params.Organizer
	}
	return merged
}

// Repository is the events data-access contract. Listings are in insertion
// order (ascending id). ListByCategory treats CategoryAll as no filter.
// Delete reports whether a record was removed and never cascades to
// registrations.
type Repository interface {
	GetByID(ctx context.Context, id int) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	ListByCategory(ctx context.Context, category string) ([]Event, error)
	ListFeatured(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, params CreateParams) (*Event, error)
	Update(ctx context.Context, id int, params UpdateParams) (*Event, error)
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}
