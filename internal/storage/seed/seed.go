// Package seed loads the demo fixtures: two well-known accounts and a
// handful of campus events. Intended for development and test environments.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/storage"
	"github.com/rs/zerolog"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		panic(fmt.Sprintf("seed: bad fixture date %q: %v", value, err))
	}
	return parsed.UTC()
}

func datePtr(value string) *time.Time {
	parsed := date(value)
	return &parsed
}

var demoAccounts = []accounts.RegisterParams{
	{
		Username: "admin",
		Password: "admin123",
		Name:     "Admin User",
		Email:    "admin@campus.example.edu",
		IsAdmin:  true,
	},
	{
		Username: "user",
		Password: "pass1111",
		Name:     "Regular User",
		Email:    "user@example.com",
	},
}

var demoEvents = []events.CreateParams{
	{
		Title:       "Annual Tech Fest",
		Description: "Join us for the biggest tech event of the year! Participate in hackathons, workshops, and tech talks from industry experts.",
		Venue:       "University Auditorium",
		Date:        date("2024-04-15T15:00:00"),
		EndDate:     datePtr("2024-04-15T23:00:00"),
		ImageURL:    "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?auto=format&fit=crop&w=800&q=80",
		Category:    events.CategoryTechnical,
		Featured:    true,
		Organizer:   "Department of Computer Science",
	},
	{
		Title:       "University Cricket Tournament",
		Description: "The annual inter-department cricket tournament. Come cheer for your department's team!",
		Venue:       "Sports Complex",
		Date:        date("2024-04-25T10:00:00"),
		EndDate:     datePtr("2024-04-25T18:00:00"),
		ImageURL:    "https://images.unsplash.com/photo-1540747913346-19e32dc3e97e?auto=format&fit=crop&w=800&q=80",
		Category:    events.CategorySports,
		Featured:    true,
		Organizer:   "Sports Department",
	},
	{
		Title:       "Cultural Night",
		Description: "A celebration of diverse cultures through music, dance, and art performances by students.",
		Venue:       "University Auditorium",
		Date:        date("2024-05-10T18:00:00"),
		EndDate:     datePtr("2024-05-10T22:00:00"),
		ImageURL:    "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?auto=format&fit=crop&w=800&q=80",
		Category:    events.CategoryCultural,
		Organizer:   "Cultural Club",
	},
	{
		Title:       "Research Symposium",
		Description: "Annual gathering for showcasing student and faculty research. Featuring keynote speakers from industry experts.",
		Venue:       "University Auditorium",
		Date:        date("2024-05-20T09:00:00"),
		EndDate:     datePtr("2024-05-20T17:00:00"),
		ImageURL:    "https://images.unsplash.com/photo-1558403194-611308249627?auto=format&fit=crop&w=800&q=80",
		Category:    events.CategoryAcademic,
		Organizer:   "Research Department",
	},
	{
		Title:       "Football Championship",
		Description: "The most anticipated football tournament of the season. Come and support your favorite teams!",
		Venue:       "Sports Complex",
		Date:        date("2024-06-05T15:00:00"),
		EndDate:     datePtr("2024-06-05T19:00:00"),
		ImageURL:    "https://images.unsplash.com/photo-1459865264687-595d652de67e?auto=format&fit=crop&w=800&q=80",
		Category:    events.CategorySports,
		Featured:    true,
		Organizer:   "Sports Club",
	},
	{
		Title:       "Robotics Workshop",
		Description: "Hands-on workshop on building and programming robots. Perfect for beginners and enthusiasts alike!",
		Venue:       "University Auditorium",
		Date:        date("2024-06-15T10:00:00"),
		EndDate:     datePtr("2024-06-15T16:00:00"),
		ImageURL:    "https://images.unsplash.com/photo-1557804506-669a67965ba0?auto=format&fit=crop&w=800&q=80",
		Category:    events.CategoryTechnical,
		Organizer:   "Robotics Club",
	},
}

// Load inserts the demo accounts and events. It is idempotent: collections
// that already hold data are left alone, so restarting against a persistent
// store never duplicates fixtures.
func Load(ctx context.Context, repo storage.Repository, accountsSvc *accounts.Service, logger zerolog.Logger) error {
	accountCount, err := repo.Accounts().Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count accounts: %w", err)
	}
	if accountCount == 0 {
		for _, params := range demoAccounts {
			if _, err := accountsSvc.Register(ctx, params); err != nil {
				return fmt.Errorf("seed: create account %q: %w", params.Username, err)
			}
		}
		logger.Info().Int("accounts", len(demoAccounts)).Msg("seeded demo accounts")
	}

	eventCount, err := repo.Events().Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count events: %w", err)
	}
	if eventCount == 0 {
		for _, params := range demoEvents {
			if _, err := repo.Events().Create(ctx, params); err != nil {
				return fmt.Errorf("seed: create event %q: %w", params.Title, err)
			}
		}
		logger.Info().Int("events", len(demoEvents)).Msg("seeded demo events")
	}

	return nil
}
