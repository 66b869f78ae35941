package handlers

import (
	"errors"
	"net/http"

	"github.com/campusconnect/server/internal/api/apierr"
	"github.com/campusconnect/server/internal/api/middleware"
	"github.com/campusconnect/server/internal/auth"
	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/validation"
)

// AuthHandler serves registration, login, logout and the current-user probe.
type AuthHandler struct {
	Accounts     *accounts.Service
	Sessions     *auth.Manager
	CookieSecure bool
	Env          string
}

func NewAuthHandler(accountsSvc *accounts.Service, sessions *auth.Manager, cookieSecure bool, env string) *AuthHandler {
	return &AuthHandler{Accounts: accountsSvc, Sessions: sessions, CookieSecure: cookieSecure, Env: env}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Register creates an account and logs the new user straight in, so the
// client gets a session cookie alongside the 201.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerRequest
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}
	if err := validation.Struct(input); err != nil {
		apierr.BadRequest(w, r, err.Error(), nil, h.Env)
		return
	}

	account, err := h.Accounts.Register(r.Context(), accounts.RegisterParams{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
		Email:    input.Email,
		IsAdmin:  input.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) || errors.Is(err, accounts.ErrEmailTaken) {
			apierr.BadRequest(w, r, err.Error(), nil, h.Env)
			return
		}
		apierr.Internal(w, r, err, h.Env)
		return
	}

	if err := h.setSessionCookie(w, account.ID); err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}

	writeJSON(w, r, http.StatusCreated, account)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}
	if err := validation.Struct(input); err != nil {
		apierr.BadRequest(w, r, err.Error(), nil, h.Env)
		return
	}

	account, err := h.Accounts.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			apierr.Write(w, r, http.StatusUnauthorized, "Invalid username or password", nil, h.Env)
			return
		}
		apierr.Internal(w, r, err, h.Env)
		return
	}

	if err := h.setSessionCookie(w, account.ID); err != nil {
		apierr.Internal(w, r, err, h.Env)
		return
	}

	writeJSON(w, r, http.StatusOK, account)
}

// Logout destroys the server-side session and expires the cookie. It
// succeeds even without a session so clients can always call it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Sessions.Destroy(cookie.Value)
	}
	h.clearSessionCookie(w)
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromRequest(r)
	if account == nil {
		apierr.Write(w, r, http.StatusUnauthorized, "Authentication required", nil, h.Env)
		return
	}
	writeJSON(w, r, http.StatusOK, account)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, accountID int) error {
	session, err := h.Sessions.Create(accountID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
