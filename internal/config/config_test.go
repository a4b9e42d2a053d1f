package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "parkgo")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "parkgo")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if cfg.Cache.TTL != time.Minute {
		t.Errorf("cache TTL = %v, want %v", cfg.Cache.TTL, time.Minute)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.RateLimit.BookingLimit != 10 || cfg.RateLimit.BookingWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 10/1m", cfg.RateLimit.BookingLimit, cfg.RateLimit.BookingWindow)
	}
}

func TestNew_CacheTTLOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("cache TTL = %v, want 30s", cfg.Cache.TTL)
	}
}

func TestNew_MissingJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := New(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}
