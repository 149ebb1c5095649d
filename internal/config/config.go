package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// AuthConfig contains session and password settings.
type AuthConfig struct {
	Secret         string        // session token signing secret
	SessionFile    string        // where the CLI keeps the session token
	SessionTTL     time.Duration // 0 disables expiry
	PasswordScheme string        // "plain" or "bcrypt"
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string
	File  string // optional, empty disables the file backend
}

const devSecret = "dev-secret-change-me"

// Load loads configuration from an optional .env file and environment variables.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("INVENTORY_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a fixed secret when INVENTORY_SECRET is unset.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load(devSecret)
}

func load(defaultSecret string) (*Config, error) {
	if err := loadDotEnv(getEnv("INVENTORY_ENV_FILE", ".env")); err != nil {
		return nil, err
	}
	ttl, err := getEnvDuration("INVENTORY_SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Database: DatabaseConfig{
			Path: getEnv("INVENTORY_DB_PATH", "inventory.db"),
		},
		Auth: AuthConfig{
			Secret:         getEnv("INVENTORY_SECRET", defaultSecret),
			SessionFile:    getEnv("INVENTORY_SESSION_FILE", defaultSessionFile()),
			SessionTTL:     ttl,
			PasswordScheme: strings.ToLower(getEnv("INVENTORY_PASSWORD_SCHEME", "plain")),
		},
		Log: LogConfig{
			Level: getEnv("INVENTORY_LOG_LEVEL", "warn"),
			File:  getEnv("INVENTORY_LOG_FILE", ""),
		},
	}
	switch cfg.Auth.PasswordScheme {
	case "plain", "bcrypt":
	default:
		return nil, fmt.Errorf("invalid INVENTORY_PASSWORD_SCHEME %q: want plain or bcrypt", cfg.Auth.PasswordScheme)
	}
	return cfg, nil
}

// loadDotEnv reads the given file if it exists. godotenv.Load never overrides
// variables that are already set.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".inventory_session")
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvDuration retrieves an environment variable as a duration with a default fallback.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, Session: %s (ttl %s), Passwords: %s, Log: %s, Secret: *** (masked) ***}",
		c.Database.Path, c.Auth.SessionFile, c.Auth.SessionTTL, c.Auth.PasswordScheme, c.Log.Level)
}
