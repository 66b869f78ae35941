// Package memory implements the storage repository over process-local maps.
// Each entity collection is keyed by a monotonic integer counter starting at
// 1. Every operation takes the store lock once, so calls are atomic relative
// to each other; nothing spans multiple operations.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/domain/events"
	"github.com/campusconnect/server/internal/domain/registrations"
	"github.com/campusconnect/server/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	accounts      map[int]accounts.Account
	events        map[int]events.Event
	registrations map[int]registrations.Registration

	nextAccountID      int
	nextEventID        int
	nextRegistrationID int
}

var _ storage.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts:           make(map[int]accounts.Account),
		events:             make(map[int]events.Event),
		registrations:      make(map[int]registrations.Registration),
		nextAccountID:      1,
		nextEventID:        1,
		nextRegistrationID: 1,
	}
}

func (s *Store) Accounts() accounts.Repository {
	return &accountRepository{store: s}
}

func (s *Store) Events() events.Repository {
	return &eventRepository{store: s}
}

func (s *Store) Registrations() registrations.Repository {
	return &registrationRepository{store: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// sortedKeys returns map keys ascending. Ids are assigned monotonically, so
// ascending id order is insertion order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
