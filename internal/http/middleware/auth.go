package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
)

// SessionResolver turns a token into an identity and re-issues tokens close to expiry.
type SessionResolver interface {
	Resolve(token string) (auth.Identity, error)
	NeedsRefresh(id auth.Identity) bool
	Issue(id auth.Identity) (string, time.Time, error)
}

// Cookies describes the session cookie.
type Cookies struct {
	Name   string
	Secure bool
}

func (c Cookies) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request, cookieName string) (token string, fromCookie bool) {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token, false
		}
	}

	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// Session attaches the caller's identity to the request context when a valid
// token is present. Requests without one continue anonymously; admin handlers
// decide what an anonymous caller may do.
func Session(sessions SessionResolver, cookies Cookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromCookie := TokenFromRequest(r, cookies.Name)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := sessions.Resolve(token)
			if err != nil {
				slog.Debug("Ignoring invalid session token", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if fromCookie && sessions.NeedsRefresh(id) {
				refreshed, expiresAt, err := sessions.Issue(id)
				if err != nil {
					slog.Error("Failed to refresh session", slog.String("error", err.Error()))
				} else {
					cookies.Set(w, refreshed, expiresAt)
					id.ExpiresAt = expiresAt
				}
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
