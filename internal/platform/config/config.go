package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	SessionFile          string
	AnnouncementsFile    string
	Environment          string
	OfflineAnnouncements bool
	StubAddr             string
	StubJWTSecret        string
	StubTokenTTL         time.Duration
	SeedHREmail          string
	SeedHRPassword       string
	SeedEmployeeEmail    string
	SeedEmployeePassword string
	RateLimitPerMinute   int
}

func Load() Config {
	return Config{
		APIBaseURL:           getEnv("PORTAL_API_URL", "http://localhost:8080/api"),
		RequestTimeout:       getEnvDuration("PORTAL_REQUEST_TIMEOUT", 15*time.Second),
		SessionFile:          getEnv("PORTAL_SESSION_FILE", filepath.Join(os.TempDir(), "portal-session.json")),
		AnnouncementsFile:    getEnv("PORTAL_ANNOUNCEMENTS_FILE", filepath.Join(os.TempDir(), "portal-announcements.json")),
		Environment:          getEnv("PORTAL_ENV", "development"),
		OfflineAnnouncements: getEnvBool("PORTAL_OFFLINE_ANNOUNCEMENTS", false),
		StubAddr:             getEnv("PORTAL_STUB_ADDR", ":8080"),
		StubJWTSecret:        getEnv("PORTAL_STUB_JWT_SECRET", "dev-only-secret"),
		StubTokenTTL:         getEnvDuration("PORTAL_STUB_TOKEN_TTL", 8*time.Hour),
		SeedHREmail:          getEnv("PORTAL_SEED_HR_EMAIL", "hr@example.com"),
		SeedHRPassword:       getEnv("PORTAL_SEED_HR_PASSWORD", "HrPassword1"),
		SeedEmployeeEmail:    getEnv("PORTAL_SEED_EMPLOYEE_EMAIL", "employee@example.com"),
		SeedEmployeePassword: getEnv("PORTAL_SEED_EMPLOYEE_PASSWORD", "EmployeePassword1"),
		RateLimitPerMinute:   getEnvInt("PORTAL_RATE_LIMIT_PER_MINUTE", 60),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("PORTAL_API_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("PORTAL_REQUEST_TIMEOUT must be positive")
	}
	if c.Environment == "production" {
		if c.StubJWTSecret == "dev-only-secret" {
			return fmt.Errorf("PORTAL_STUB_JWT_SECRET must be changed in production")
		}
		if c.SeedHRPassword == "HrPassword1" {
			return fmt.Errorf("PORTAL_SEED_HR_PASSWORD must be changed in production")
		}
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("PORTAL_RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
