// Package auth resolves who is calling and whether that caller is the site admin.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/jwt"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/password"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Gate is the single authorization policy for admin operations.
type Gate struct {
	adminEmail string
}

func NewGate(adminEmail string) *Gate {
	return &Gate{adminEmail: adminEmail}
}

// IsAdmin reports whether the request carries an identity whose email exactly
// matches the configured admin address.
func (g *Gate) IsAdmin(ctx context.Context) bool {
	if g == nil || g.adminEmail == "" {
		return false
	}
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return false
	}
	return id.Email == g.adminEmail
}

// Sessions issues and verifies session tokens.
type Sessions struct {
	users         storage.Users
	secret        string
	ttl           time.Duration
	refreshWindow time.Duration
	now           func() time.Time
}

func NewSessions(users storage.Users, cfg config.Session) *Sessions {
	return &Sessions{
		users:         users,
		secret:        cfg.Secret,
		ttl:           cfg.TTL,
		refreshWindow: cfg.RefreshWindow,
		now:           time.Now,
	}
}

// Login checks the credentials and returns a fresh token.
func (s *Sessions) Login(ctx context.Context, email, plain string) (string, time.Time, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, storage.ErrNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("lookup user: %w", err)
	}

	if !password.CheckPasswordHash(plain, user.Password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.Issue(Identity{UserID: user.ID, Email: user.Email})
}

// Issue signs a token for id valid for the configured TTL.
func (s *Sessions) Issue(id Identity) (string, time.Time, error) {
	return jwt.CreateToken(id.UserID, id.Email, s.secret, s.ttl)
}

// Resolve verifies token and returns the identity it carries.
func (s *Sessions) Resolve(token string) (Identity, error) {
	claims, err := jwt.ParseToken(token, s.secret)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{UserID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}

	return id, nil
}

// NeedsRefresh reports whether id expires within the refresh window.
func (s *Sessions) NeedsRefresh(id Identity) bool {
	if id.ExpiresAt.IsZero() || s.refreshWindow <= 0 {
		return false
	}
	return id.ExpiresAt.Sub(s.now()) < s.refreshWindow
}

// SeedAdmin creates the admin user when it does not exist yet.
func (s *Sessions) SeedAdmin(ctx context.Context, email, plain string) error {
	if email == "" || plain == "" {
		return nil
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := password.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id, err := s.users.CreateUser(ctx, email, hash)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("Seeded admin user", slog.String("user_id", id), slog.String("email", email))
	return nil
}
