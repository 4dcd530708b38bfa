// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Server settings
	ListenAddr         string
	CORSAllowedOrigins string

	// Storage settings
	DatabaseURL string
	RedisAddr   string // optional, empty disables the session cache and sweeper

	// Session policy
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Password hashing scheme: "stretch" or "argon2"
	PasswordScheme string
}

// Load reads the configuration from environment variables, pulling in a
// .env file first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),

		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", time.Hour),

		PasswordScheme: getEnv("PASSWORD_SCHEME", "stretch"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.PasswordScheme != "stretch" && c.PasswordScheme != "argon2" {
		return fmt.Errorf("PASSWORD_SCHEME must be \"stretch\" or \"argon2\", got %q", c.PasswordScheme)
	}
	return nil
}

// getEnv returns the environment variable or the default when unset.
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses the environment variable as a time.Duration.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
