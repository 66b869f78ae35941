package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/server/internal/auth"
	"github.com/campusconnect/server/internal/config"
	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/storage/memory"
	"github.com/campusconnect/server/internal/storage/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	store   *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Config{
		Server:      config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Session:     config.SessionConfig{TTL: 24 * time.Hour, SweepInterval: time.Hour},
		CORS:        config.CORSConfig{AllowAllOrigins: true},
		Environment: "test",
	}

	store := memory.New()
	logger := zerolog.Nop()
	sessions := auth.NewManager(cfg.Session.TTL, logger)

	accountsService := accounts.NewService(store.Accounts(), logger)
	require.NoError(t, seed.Load(t.Context(), store, accountsService, logger))

	handler := NewRouter(cfg, logger, Dependencies{
		Repo:     store,
		Sessions: sessions,
		Version:  "test",
	})

	return &fixture{handler: handler, store: store}
}

// do performs a JSON request, optionally with a session cookie.
func (f *fixture) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func (f *fixture) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func TestRegisterThenLookup(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/register", map[string]any{
		"username": "newstudent",
		"password": "secret99",
		"name":     "New Student",
		"email":    "newstudent@example.edu",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	require.Equal(t, "newstudent", created["username"])
	require.NotContains(t, created, "password")
	require.NotContains(t, created, "passwordHash")

	// Registration logs the new account straight in.
	cookie := sessionCookie(t, rec)
	me := f.do(t, http.MethodGet, "/api/user", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)

	// Case-insensitive lookup finds the account.
	account, err := f.store.Accounts().GetByUsername(t.Context(), "NEWSTUDENT")
	require.NoError(t, err)
	require.Equal(t, "newstudent@example.edu", account.Email)
}

func TestRegisterDuplicatesRejectedBeforeCreate(t *testing.T) {
	f := newFixture(t)

	before, err := f.store.Accounts().Count(t.Context())
	require.NoError(t, err)

	// Seeded "admin" username, different case.
	rec := f.do(t, http.MethodPost, "/api/register", map[string]any{
		"username": "ADMIN",
		"password": "whatever1",
		"name":     "Imposter",
		"email":    "fresh@example.edu",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Seeded user's email, different case.
	rec = f.do(t, http.MethodPost, "/api/register", map[string]any{
		"username": "someoneelse",
		"password": "whatever1",
		"name":     "Imposter",
		"email":    "USER@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	after, err := f.store.Accounts().Count(t.Context())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestLoginLogoutFlow(t *testing.T) {
	f := newFixture(t)

	// Wrong password: 401 and no cookie.
	rec := f.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "user",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	for _, cookie := range rec.Result().Cookies() {
		require.NotEqual(t, auth.CookieName, cookie.Name)
	}

	// Correct credentials establish a session usable on /api/user.
	rec = f.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "user",
		"password": "pass1111",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loggedIn := decode[map[string]any](t, rec)
	cookie := sessionCookie(t, rec)

	me := f.do(t, http.MethodGet, "/api/user", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)
	current := decode[map[string]any](t, me)
	require.Equal(t, loggedIn["id"], current["id"])

	// Logout destroys the session.
	out := f.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, out.Code)

	me = f.do(t, http.MethodGet, "/api/user", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, me.Code)
}

func TestEventCategoryFilter(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/events?category=Technical", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	technical := decode[[]map[string]any](t, rec)
	require.NotEmpty(t, technical)
	for _, event := range technical {
		require.Equal(t, "Technical", event["category"])
	}

	all := decode[[]map[string]any](t, f.do(t, http.MethodGet, "/api/events?category=All", nil, nil))
	unfiltered := decode[[]map[string]any](t, f.do(t, http.MethodGet, "/api/events", nil, nil))
	require.Equal(t, unfiltered, all)
	require.Len(t, unfiltered, 6)
}

func TestEventSearch(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/events?search=fest", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode[[]map[string]any](t, rec)
	require.NotEmpty(t, matches)

	titles := make([]string, 0, len(matches))
	for _, event := range matches {
		titles = append(titles, event["title"].(string))
	}
	require.Contains(t, titles, "Annual Tech Fest")
	require.NotContains(t, titles, "University Cricket Tournament")
}

func TestEventFeatured(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/events/featured", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	featured := decode[[]map[string]any](t, rec)
	require.Len(t, featured, 3)
	for _, event := range featured {
		require.Equal(t, true, event["featured"])
	}
}

func TestEventCreateAuthorization(t *testing.T) {
	f := newFixture(t)

	payload := map[string]any{
		"title":       "Guest Lecture",
		"description": "A distinguished speaker visits campus.",
		"venue":       "Lecture Hall 2",
		"date":        "2026-10-01T14:00:00Z",
		"category":    "Academic",
	}

	before, err := f.store.Events().Count(t.Context())
	require.NoError(t, err)

	// Anonymous: 401.
	rec := f.do(t, http.MethodPost, "/api/events", payload, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated non-admin: 403.
	userCookie := f.login(t, "user", "pass1111")
	rec = f.do(t, http.MethodPost, "/api/events", payload, userCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	after, err := f.store.Events().Count(t.Context())
	require.NoError(t, err)
	require.Equal(t, before, after)

	// Admin: 201 and retrievable.
	adminCookie := f.login(t, "admin", "admin123")
	rec = f.do(t, http.MethodPost, "/api/events", payload, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	id := int(created["id"].(float64))

	got := f.do(t, http.MethodGet, fmt.Sprintf("/api/events/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, got.Code)
	require.Equal(t, "Guest Lecture", decode[map[string]any](t, got)["title"])
}

func TestEventCreateValidation(t *testing.T) {
	f := newFixture(t)
	adminCookie := f.login(t, "admin", "admin123")

	// Missing required fields.
	rec := f.do(t, http.MethodPost, "/api/events", map[string]any{"title": "Incomplete"}, adminCookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Bad category.
	rec = f.do(t, http.MethodPost, "/api/events", map[string]any{
		"title": "X", "description": "d", "venue": "v",
		"date": "2026-10-01T14:00:00Z", "category": "Misc",
	}, adminCookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// endDate before date.
	rec = f.do(t, http.MethodPost, "/api/events", map[string]any{
		"title": "X", "description": "d", "venue": "v",
		"date": "2026-10-01T14:00:00Z", "endDate": "2026-10-01T10:00:00Z",
		"category": "Academic",
	}, adminCookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventDelete(t *testing.T) {
	f := newFixture(t)
	adminCookie := f.login(t, "admin", "admin123")

	// Non-existent id: 404.
	rec := f.do(t, http.MethodDelete, "/api/events/99999", nil, adminCookie)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Existing id: 204, then gone.
	rec = f.do(t, http.MethodDelete, "/api/events/1", nil, adminCookie)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/events/1", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventPartialUpdate(t *testing.T) {
	f := newFixture(t)
	adminCookie := f.login(t, "admin", "admin123")

	before := decode[map[string]any](t, f.do(t, http.MethodGet, "/api/events/1", nil, nil))

	rec := f.do(t, http.MethodPatch, "/api/events/1", map[string]any{"title": "New Title"}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	after := decode[map[string]any](t, rec)

	require.Equal(t, "New Title", after["title"])
	for key, value := range before {
		if key == "title" {
			continue
		}
		require.Equal(t, value, after[key], key)
	}
}

func TestEventUpdateEndDateNullVsAbsent(t *testing.T) {
	f := newFixture(t)
	adminCookie := f.login(t, "admin", "admin123")

	// Seeded event 1 has an endDate. Absent field keeps it.
	rec := f.do(t, http.MethodPut, "/api/events/1", map[string]any{"venue": "Moved Hall"}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, decode[map[string]any](t, rec)["endDate"])

	// Explicit null clears it.
	rec = f.do(t, http.MethodPut, "/api/events/1", map[string]any{"endDate": nil}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, decode[map[string]any](t, rec)["endDate"])
}

func TestEventUpdateRejectsEndBeforeStart(t *testing.T) {
	f := newFixture(t)
	adminCookie := f.login(t, "admin", "admin123")

	before := decode[map[string]any](t, f.do(t, http.MethodGet, "/api/events/1", nil, nil))

	// Both fields in the payload, inverted.
	rec := f.do(t, http.MethodPatch, "/api/events/1", map[string]any{
		"date":    "2026-10-01T14:00:00Z",
		"endDate": "2026-10-01T10:00:00Z",
	}, adminCookie)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// Seeded event 1 runs 15:00-23:00; an endDate before the stored start is
	// just as invalid when the date itself is untouched.
	rec = f.do(t, http.MethodPatch, "/api/events/1", map[string]any{"endDate": "2024-04-15T10:00:00"}, adminCookie)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// And so is moving the start past the stored endDate.
	rec = f.do(t, http.MethodPatch, "/api/events/1", map[string]any{"date": "2024-04-16T09:00:00"}, adminCookie)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// None of the rejected updates may have been persisted.
	after := decode[map[string]any](t, f.do(t, http.MethodGet, "/api/events/1", nil, nil))
	require.Equal(t, before, after)

	// Clearing endDate lifts the constraint on the new date.
	rec = f.do(t, http.MethodPatch, "/api/events/1", map[string]any{
		"date":    "2024-04-16T09:00:00",
		"endDate": nil,
	}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Nil(t, decode[map[string]any](t, rec)["endDate"])
}

func TestRegistrationFlow(t *testing.T) {
	f := newFixture(t)

	// Guest registration for a missing event: 404, nothing stored.
	rec := f.do(t, http.MethodPost, "/api/registrations", map[string]any{
		"eventId":  99999,
		"fullName": "Ghost",
		"email":    "ghost@example.com",
		"tickets":  1,
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	count, err := f.store.Registrations().Count(t.Context())
	require.NoError(t, err)
	require.Zero(t, count)

	// Anonymous registration records userId 0.
	rec = f.do(t, http.MethodPost, "/api/registrations", map[string]any{
		"eventId":  1,
		"fullName": "Guest Visitor",
		"email":    "guest@example.com",
		"phone":    "555-0100",
		"tickets":  2,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	guest := decode[map[string]any](t, rec)
	require.Equal(t, float64(0), guest["userId"])

	// Authenticated registration carries the account id.
	userCookie := f.login(t, "user", "pass1111")
	rec = f.do(t, http.MethodPost, "/api/registrations", map[string]any{
		"eventId":  1,
		"fullName": "Regular User",
		"email":    "user@example.com",
		"tickets":  1,
	}, userCookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	mine := decode[map[string]any](t, rec)
	require.NotEqual(t, float64(0), mine["userId"])

	// Per-user listing requires a session and shows only own rows.
	rec = f.do(t, http.MethodGet, "/api/registrations/user", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/registrations/user", nil, userCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 1)

	// Per-event listing is admin-only.
	rec = f.do(t, http.MethodGet, "/api/registrations/event/1", nil, userCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminCookie := f.login(t, "admin", "admin123")
	rec = f.do(t, http.MethodGet, "/api/registrations/event/1", nil, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestRegistrationValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/registrations", map[string]any{
		"eventId":  1,
		"fullName": "No Tickets",
		"email":    "bad-email",
		"tickets":  0,
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	require.NotEmpty(t, body["message"])
}

func TestBadEventIDIsBadRequest(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/events/abc", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	rec = f.do(t, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorBodyShape(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/events/424242", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode[map[string]string](t, rec)
	require.Equal(t, "Event not found", body["message"])
}
