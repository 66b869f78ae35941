package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CookieName is the session cookie issued to browsers.
const CookieName = "campus_session"

// Session binds an opaque token to an account for a fixed window. Expiry is
// fixed at creation, not sliding: activity does not extend a session.
type Session struct {
	Token     string
	AccountID int
	ExpiresAt time.Time
}

// Manager owns the process-wide session table. All methods are safe for
// concurrent use. Expired entries are dropped lazily on lookup and in bulk
// by Sweep, which the serve command drives on a ticker.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewManager(ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]Session),
		ttl:      ttl,
		logger:   logger.With().Str("component", "sessions").Logger(),
	}
}

// Create establishes a session for the account and returns it. Tokens are
// 32 random bytes, URL-safe base64 encoded.
func (m *Manager) Create(accountID int) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, fmt.Errorf("generate session token: %w", err)
	}

	session := Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[token] = session
	m.mu.Unlock()

	return session, nil
}

// Principal resolves a session token to the account id it was issued for.
// Missing and expired tokens both report false; expired entries are removed
// on the spot.
func (m *Manager) Principal(token string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, token)
		return 0, false
	}
	return session.AccountID, true
}

// Destroy removes a session. Removing an absent token is not an error.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Sweep removes every session that expired before now and returns how many
// were dropped.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions on the given interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(time.Now()); removed > 0 {
				m.logger.Debug().Int("removed", removed).Msg("swept expired sessions")
			}
		}
	}
}

// Len reports the number of live entries in the session table, including any
// expired entries not yet swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
