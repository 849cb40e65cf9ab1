package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBPath string

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Identities that are always treated as tutors. Configuration, not a
	// hard-coded constant, so the allow-list can change without a deploy of
	// new code paths.
	TutorEmails []string

	// Feedback advisor
	AdvisorURL     string
	AdvisorAPIKey  string
	AdvisorTimeout time.Duration

	// Cron spec for the suggestion backfill job; empty disables it.
	SuggestionBackfillCron string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env if present
	_ = godotenv.Load()

	config := &Config{
		Port:                   getEnv("PORT", "8080"),
		Host:                   getEnv("HOST", "0.0.0.0"),
		DBPath:                 getEnv("DB_PATH", "/tmp/tutorhub.db"),
		JWTSecret:              getEnv("JWT_SECRET", "tutorhub_secret_key"),
		JWTExpiration:          getDuration("JWT_EXPIRATION", 24*time.Hour),
		AdvisorURL:             getEnv("ADVISOR_URL", ""),
		AdvisorAPIKey:          getEnv("ADVISOR_API_KEY", ""),
		AdvisorTimeout:         getDuration("ADVISOR_TIMEOUT", 10*time.Second),
		SuggestionBackfillCron: getEnv("SUGGESTION_BACKFILL_CRON", ""),
	}

	for _, email := range strings.Split(getEnv("TUTOR_EMAILS", "lgubevu@gmail.com"), ",") {
		email = strings.TrimSpace(email)
		if email != "" {
			config.TutorEmails = append(config.TutorEmails, email)
		}
	}

	return config, nil
}

// getEnv reads an environment variable with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
