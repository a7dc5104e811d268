package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/ratelimit"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	identities map[string]auth.Identity
	refresh    bool
	issued     int
}

func (f *fakeSessions) Resolve(token string) (auth.Identity, error) {
	id, ok := f.identities[token]
	if !ok {
		return auth.Identity{}, errors.New("invalid token")
	}
	return id, nil
}

func (f *fakeSessions) NeedsRefresh(auth.Identity) bool { return f.refresh }

func (f *fakeSessions) Issue(id auth.Identity) (string, time.Time, error) {
	f.issued++
	return "refreshed-token", time.Now().Add(time.Hour), nil
}

var cookies = Cookies{Name: "session", Secure: true}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := auth.IdentityFromContext(r.Context()); ok {
			w.Write([]byte(id.Email))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestSessionResolvesBearerAndCookie(t *testing.T) {
	sessions := &fakeSessions{identities: map[string]auth.Identity{
		"good": {UserID: "u1", Email: "admin@umerfilms.com"},
	}}
	handler := Session(sessions, cookies)(identityEcho())

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"no token", func(r *http.Request) {}, "anonymous"},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, "admin@umerfilms.com"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: "good"}) }, "admin@umerfilms.com"},
		{"invalid token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, "anonymous"},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Basic good") }, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestSessionRefreshesCookieNearExpiry(t *testing.T) {
	sessions := &fakeSessions{
		identities: map[string]auth.Identity{"good": {UserID: "u1", Email: "admin@umerfilms.com"}},
		refresh:    true,
	}
	handler := Session(sessions, cookies)(identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, 1, sessions.issued)
	result := rec.Result()
	require.Len(t, result.Cookies(), 1)
	assert.Equal(t, "refreshed-token", result.Cookies()[0].Value)
	assert.True(t, result.Cookies()[0].HttpOnly)

	// Bearer tokens belong to the caller; only cookies are refreshed.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, 1, sessions.issued)
}

func TestAdminPagesRedirects(t *testing.T) {
	gate := auth.NewGate("admin@umerfilms.com")
	pages := AdminPages(gate, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page"))
	}))

	admin := auth.Identity{UserID: "u1", Email: "admin@umerfilms.com"}
	visitor := auth.Identity{UserID: "u2", Email: "someone@example.com"}

	tests := []struct {
		name     string
		path     string
		identity *auth.Identity
		status   int
		location string
	}{
		{"anonymous on dashboard", "/admin", nil, http.StatusFound, AdminLogin},
		{"anonymous on nested page", "/admin/videos", nil, http.StatusFound, AdminLogin},
		{"non-admin on dashboard", "/admin", &visitor, http.StatusFound, AdminLogin},
		{"anonymous on login", "/admin/login", nil, http.StatusOK, ""},
		{"non-admin on login", "/admin/login", &visitor, http.StatusOK, ""},
		{"admin on login", "/admin/login", &admin, http.StatusFound, AdminHome},
		{"admin on dashboard", "/admin/videos", &admin, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.identity != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()

			pages.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

type fakeLimiter struct {
	decision ratelimit.Decision
	err      error
	subjects []string
}

func (f *fakeLimiter) Allow(ctx context.Context, subject, action string) (ratelimit.Decision, error) {
	f.subjects = append(f.subjects, subject)
	return f.decision, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
}

func TestRateLimitDeniesWithHeaders(t *testing.T) {
	limiter := &fakeLimiter{decision: ratelimit.Decision{Allowed: false, Limit: 3, Remaining: 0, Reset: time.Minute}}
	handler := NewRateLimit(false).Limit(limiter, "contact", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, []string{"203.0.113.9"}, limiter.subjects)
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis down")}
	handler := NewRateLimit(false).Limit(limiter, "login", okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRateLimitNilLimiterPassesThrough(t *testing.T) {
	handler := NewRateLimit(false).Limit(nil, "login", okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")

	assert.Equal(t, "10.0.0.2", NewRateLimit(false).ClientIP(req))
	assert.Equal(t, "198.51.100.4", NewRateLimit(true).ClientIP(req))
}
