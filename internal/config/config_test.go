package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	path := writeConfig(t, "admin:\n  email: owner@example.com\nsession:\n  secret: s3cret\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %v, want production", cfg.Env)
	}
	if cfg.HTTPServer.Address != "localhost:8080" {
		t.Errorf("HTTPServer.Address = %v, want localhost:8080", cfg.HTTPServer.Address)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.Site.PortraitFallback != "/images/portrait.jpg" {
		t.Errorf("Site.PortraitFallback = %v", cfg.Site.PortraitFallback)
	}
	if cfg.Content.AtomicVideoWrites {
		t.Error("Content.AtomicVideoWrites should default to false")
	}
	if len(cfg.Media.AllowedMimeTypes) == 0 {
		t.Error("Media.AllowedMimeTypes should have defaults")
	}
}

func TestLoad_SMTPRecipientDefaultsToAdmin(t *testing.T) {
	path := writeConfig(t, "admin:\n  email: owner@example.com\nsession:\n  secret: s3cret\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SMTP.To != "owner@example.com" {
		t.Errorf("SMTP.To = %v, want owner@example.com", cfg.SMTP.To)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "admin:\n  email: owner@example.com\nsession:\n  secret: s3cret\n")
	t.Setenv("ADMIN_EMAIL", "other@example.com")
	t.Setenv("PG_DBNAME", "films_test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Admin.Email != "other@example.com" {
		t.Errorf("Admin.Email = %v, want other@example.com", cfg.Admin.Email)
	}
	if cfg.PGSQL.DBName != "films_test" {
		t.Errorf("PGSQL.DBName = %v, want films_test", cfg.PGSQL.DBName)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_MissingAdminEmail(t *testing.T) {
	path := writeConfig(t, "session:\n  secret: s3cret\n")
	t.Setenv("ADMIN_EMAIL", "")
	os.Unsetenv("ADMIN_EMAIL")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error when admin email is missing")
	}
}

func TestPQSQL_DSN(t *testing.T) {
	p := PQSQL{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "d", SSLMode: "require"}
	want := "host=db port=5433 user=u password=p dbname=d sslmode=require"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoad_RateLimitDefaults(t *testing.T) {
	path := writeConfig(t, "admin:\n  email: owner@example.com\nsession:\n  secret: s3cret\nrate_limit:\n  contact: 10\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RateLimit.Login != 5 {
		t.Errorf("RateLimit.Login = %v, want 5", cfg.RateLimit.Login)
	}
	if cfg.RateLimit.Contact != 10 {
		t.Errorf("RateLimit.Contact = %v, want 10", cfg.RateLimit.Contact)
	}
	if cfg.HTTPServer.TrustProxyHeaders {
		t.Error("HTTPServer.TrustProxyHeaders should default to false")
	}
}
