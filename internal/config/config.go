// Package config loads runtime configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the campus backend root, e.g. "https://api.campus.example".
	APIBaseURL string

	// RequestTimeout is the maximum duration for a single backend
	// request. Default: 30s.
	RequestTimeout time.Duration

	// DBPath overrides the local SQLite database location.
	// Empty selects the XDG data directory.
	DBPath string

	// LogFile overrides the debug log location. Empty selects the XDG
	// state directory; LogEnabled false disables file logging entirely.
	LogFile    string
	LogEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		LogEnabled:     false,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is
// loaded first; already-set variables win over the file.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if u := os.Getenv("CAMPUSMATE_API_URL"); u != "" {
		cfg.APIBaseURL = u
	}
	if t := os.Getenv("CAMPUSMATE_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if p := os.Getenv("CAMPUSMATE_DB"); p != "" {
		cfg.DBPath = p
	}
	if f := os.Getenv("CAMPUSMATE_LOG_FILE"); f != "" {
		cfg.LogFile = f
		cfg.LogEnabled = true
	}
	if v := os.Getenv("CAMPUSMATE_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.LogEnabled = on
		}
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CAMPUSMATE_API_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// ResolveLogFile returns the log file path, applying the XDG state
// directory default when no override is set.
func (c Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "campusmate", "campusmate.log"), nil
}
