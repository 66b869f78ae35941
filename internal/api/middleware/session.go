package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/campusconnect/server/internal/api/apierr"
	"github.com/campusconnect/server/internal/auth"
	"github.com/campusconnect/server/internal/domain/accounts"
)

type contextKeyAccount string

const accountKey contextKeyAccount = "account"

// SessionAuth resolves the session cookie on every request and, when the
// token maps to a live session, attaches the account to the request
// context. It never rejects: anonymous requests pass through untouched so
// public endpoints stay public. RequireAuth and RequireAdmin do the gating.
func SessionAuth(sessions *auth.Manager, svc *accounts.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || strings.TrimSpace(cookie.Value) == "" {
				next.ServeHTTP(w, r)
				return
			}

			accountID, ok := sessions.Principal(cookie.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			account, err := svc.GetByID(r.Context(), accountID)
			if err != nil {
				// Session outlived its account; treat as anonymous.
				if !errors.Is(err, accounts.ErrNotFound) {
					apierr.Internal(w, r, err, "")
					return
				}
				sessions.Destroy(cookie.Value)
				next.ServeHTTP(w, r)
				return
			}

			ctx := contextWithAccount(r.Context(), account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if AccountFromRequest(r) == nil {
				apierr.Write(w, r, http.StatusUnauthorized, "Authentication required", nil, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admin accounts with 403.
func RequireAdmin(env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := AccountFromRequest(r)
			if account == nil {
				apierr.Write(w, r, http.StatusUnauthorized, "Authentication required", nil, env)
				return
			}
			if !account.IsAdmin {
				apierr.Write(w, r, http.StatusForbidden, "Admin access required", nil, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contextWithAccount(ctx context.Context, account *accounts.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// AccountFromRequest returns the authenticated account or nil.
func AccountFromRequest(r *http.Request) *accounts.Account {
	if r == nil {
		return nil
	}
	if account, ok := r.Context().Value(accountKey).(*accounts.Account); ok {
		return account
	}
	return nil
}
