// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultAdminPassword is the placeholder used in local setups. Running
// production with it still set is treated as a deployment mistake.
const defaultAdminPassword = "admin123"

// Config holds all runtime configuration for the service.
type Config struct {
	DatabaseURL   string
	JWTSecret     string
	AdminPassword string
	Port          string
	Host          string
	AppEnv        string

	AllowedOrigins []string

	// Upload limits for multipart image fields.
	MaxFileSize      int64
	AllowedMimeTypes []string

	// Per-IP rate limiting.
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Object storage (S3-compatible: MinIO locally, any S3 provider in production)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool
}

// Load reads configuration from a .env file (if present) and environment
// variables. Missing required values or an unsafe production setup are fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current process environment without
// validating it. Load is the entrypoint for normal startup.
func FromEnv() *Config {
	return &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Port:          getEnv("PORT", "8085"),
		Host:          getEnv("HOST", "0.0.0.0"),
		AppEnv:        getEnv("APP_ENV", "development"),

		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000")),

		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", 5*1024*1024),
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/jpg",
			"image/png",
			"image/gif",
			"image/webp",
		},

		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "uploads"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",
	}
}

// Validate checks required values and rejects unsafe production settings.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}

	if len(c.JWTSecret) < 32 {
		log.Printf("warning: JWT_SECRET should be at least 32 characters (got %d)", len(c.JWTSecret))
	}

	if c.IsProduction() && c.AdminPassword == defaultAdminPassword {
		return ErrDefaultAdminPassword
	}

	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Addr returns the host:port the HTTP server should bind to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AllowedMimeType reports whether the given content type may be uploaded.
func (c *Config) AllowedMimeType(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, m := range c.AllowedMimeTypes {
		if mime == m {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using default %d", key, v, fallback)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using default %d", key, v, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using default %s", key, v, fallback)
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := strings.TrimSpace(p); item != "" {
			out = append(out, item)
		}
	}
	return out
}
