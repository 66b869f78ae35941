package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/server/internal/auth"
	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*auth.Manager, *accounts.Service, *accounts.Account, *accounts.Account) {
	t.Helper()

	store := memory.New()
	svc := accounts.NewService(store.Accounts(), zerolog.Nop())
	sessions := auth.NewManager(time.Hour, zerolog.Nop())

	admin, err := svc.Register(t.Context(), accounts.RegisterParams{
		Username: "admin", Password: "admin123", Name: "Admin", Email: "admin@example.edu", IsAdmin: true,
	})
	require.NoError(t, err)

	user, err := svc.Register(t.Context(), accounts.RegisterParams{
		Username: "user", Password: "pass1111", Name: "User", Email: "user@example.edu",
	})
	require.NoError(t, err)

	return sessions, svc, admin, user
}

func echoAccount(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := AccountFromRequest(r)
		if account == nil {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(account.Username))
	})
}

func TestSessionAuthAttachesAccount(t *testing.T) {
	sessions, svc, _, user := newSessionFixture(t)

	session, err := sessions.Create(user.ID)
	require.NoError(t, err)

	handler := SessionAuth(sessions, svc)(echoAccount(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: session.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "user", rec.Body.String())
}

func TestSessionAuthIgnoresMissingOrBogusCookie(t *testing.T) {
	sessions, svc, _, _ := newSessionFixture(t)
	handler := SessionAuth(sessions, svc)(echoAccount(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "anonymous", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "forged-token"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireAuth(t *testing.T) {
	sessions, svc, _, user := newSessionFixture(t)
	session, err := sessions.Create(user.ID)
	require.NoError(t, err)

	handler := SessionAuth(sessions, svc)(RequireAuth("test")(echoAccount(t)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: session.Token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	sessions, svc, admin, user := newSessionFixture(t)

	adminSession, err := sessions.Create(admin.ID)
	require.NoError(t, err)
	userSession, err := sessions.Create(user.ID)
	require.NoError(t, err)

	handler := SessionAuth(sessions, svc)(RequireAdmin("test")(echoAccount(t)))

	// Anonymous gets 401.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated non-admin gets 403.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: userSession.Token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Admin passes.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: adminSession.Token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthDestroysOrphanedSession(t *testing.T) {
	sessions, svc, _, _ := newSessionFixture(t)

	session, err := sessions.Create(9999)
	require.NoError(t, err)

	handler := SessionAuth(sessions, svc)(echoAccount(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: session.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "anonymous", rec.Body.String())
	_, ok := sessions.Principal(session.Token)
	require.False(t, ok)
}
