package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEmail = "umer@example.com"

func newSessions(t *testing.T) (*Sessions, *memory.Store) {
	t.Helper()
	store := memory.New()
	s := NewSessions(store, config.Session{
		Secret:        "test-secret",
		TTL:           24 * time.Hour,
		RefreshWindow: time.Hour,
	})
	return s, store
}

func TestGateIsAdmin(t *testing.T) {
	gate := NewGate(adminEmail)
	ctx := context.Background()

	assert.False(t, gate.IsAdmin(ctx), "anonymous")
	assert.False(t, gate.IsAdmin(WithIdentity(ctx, Identity{Email: "someone@example.com"})))
	assert.False(t, gate.IsAdmin(WithIdentity(ctx, Identity{Email: "UMER@example.com"})), "match is exact")
	assert.True(t, gate.IsAdmin(WithIdentity(ctx, Identity{Email: adminEmail})))

	assert.False(t, NewGate("").IsAdmin(WithIdentity(ctx, Identity{Email: ""})), "unset admin email never matches")
}

func TestLoginAndResolve(t *testing.T) {
	s, _ := newSessions(t)
	ctx := context.Background()

	require.NoError(t, s.SeedAdmin(ctx, adminEmail, "hunter22"))

	_, _, err := s.Login(ctx, adminEmail, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, expiresAt, err := s.Login(ctx, adminEmail, "hunter22")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	id, err := s.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, adminEmail, id.Email)
	assert.NotEmpty(t, id.UserID)

	_, err = s.Resolve(token + "x")
	assert.Error(t, err)
}

func TestResolveRejectsOtherSecret(t *testing.T) {
	s, _ := newSessions(t)
	other := NewSessions(memory.New(), config.Session{Secret: "other", TTL: time.Hour})

	token, _, err := other.Issue(Identity{UserID: "u1", Email: adminEmail})
	require.NoError(t, err)

	_, err = s.Resolve(token)
	assert.Error(t, err)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	s, store := newSessions(t)
	ctx := context.Background()

	require.NoError(t, s.SeedAdmin(ctx, adminEmail, "first-pass"))
	require.NoError(t, s.SeedAdmin(ctx, adminEmail, "second-pass"))

	// The original password survives a second seed.
	_, _, err := s.Login(ctx, adminEmail, "first-pass")
	assert.NoError(t, err)

	require.NoError(t, s.SeedAdmin(ctx, "", "x"))

	store.Fail("GetUserByEmail", errors.New("db down"))
	assert.Error(t, s.SeedAdmin(ctx, "new@example.com", "pass123"))
}

func TestNeedsRefresh(t *testing.T) {
	s, _ := newSessions(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.True(t, s.NeedsRefresh(Identity{ExpiresAt: now.Add(30 * time.Minute)}))
	assert.False(t, s.NeedsRefresh(Identity{ExpiresAt: now.Add(5 * time.Hour)}))
	assert.False(t, s.NeedsRefresh(Identity{}))
}
