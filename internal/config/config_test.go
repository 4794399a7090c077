package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL:   "postgres://localhost:5432/content?sslmode=disable",
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		AdminPassword: "a-strong-password",
		AppEnv:        "development",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	cfg.AdminPassword = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing required vars")
	}

	var missing *MissingEnvError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingEnvError, got %T", err)
	}
	if len(missing.Vars) != 2 {
		t.Fatalf("expected 2 missing vars, got %v", missing.Vars)
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Fatalf("error should name the missing vars, got %q", err.Error())
	}
}

func TestValidateDefaultAdminPasswordInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.AdminPassword = "admin123"

	// Tolerated in development.
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default password should pass outside production, got %v", err)
	}

	cfg.AppEnv = "production"
	if err := cfg.Validate(); !errors.Is(err, ErrDefaultAdminPassword) {
		t.Fatalf("expected ErrDefaultAdminPassword, got %v", err)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "pw")

	cfg := FromEnv()

	if cfg.Port != "8085" {
		t.Errorf("expected default port 8085, got %q", cfg.Port)
	}
	if cfg.MaxFileSize != 5*1024*1024 {
		t.Errorf("expected 5MiB default file size, got %d", cfg.MaxFileSize)
	}
	if cfg.RateLimitWindow != 15*time.Minute || cfg.RateLimitMax != 100 {
		t.Errorf("unexpected rate limit defaults: %v / %d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	if cfg.StorageBucket != "uploads" {
		t.Errorf("expected default bucket uploads, got %q", cfg.StorageBucket)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("expected default allowed origins")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://kingarthurcapital.com, https://admin.kingarthurcapital.com")

	cfg := FromEnv()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.MaxFileSize != 1048576 {
		t.Errorf("expected 1MiB file size, got %d", cfg.MaxFileSize)
	}
	if cfg.RateLimitWindow != time.Minute || cfg.RateLimitMax != 10 {
		t.Errorf("unexpected rate limits: %v / %d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	want := []string{"https://kingarthurcapital.com", "https://admin.kingarthurcapital.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.AllowedOrigins)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: expected %q, got %q", i, want[i], cfg.AllowedOrigins[i])
		}
	}
}

func TestAllowedMimeType(t *testing.T) {
	cfg := mimeTestConfig(t)

	tests := []struct {
		mime string
		want bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"IMAGE/PNG", true},
		{" image/webp ", true},
		{"image/svg+xml", false},
		{"application/pdf", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := cfg.AllowedMimeType(tt.mime); got != tt.want {
			t.Errorf("AllowedMimeType(%q) = %v, want %v", tt.mime, got, tt.want)
		}
	}
}

func mimeTestConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "pw")
	return FromEnv()
}
