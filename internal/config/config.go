package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/siteflow-tools/siteflow-mcp/pkg/api"
)

type (
	// Config holds configuration settings for the Siteflow MCP server
	Config struct {
		// Remote API
		ServerURL    string
		ClientID     string
		ClientSecret string
		ProjectID    api.ProjectID
		FamilyID     api.FamilyID

		// HTTP behavior
		HTTPTimeout time.Duration
		TokenLeeway time.Duration
		MaxAttempts int

		LogLevel string
	}
)

const (
	DefaultServerURL   = "https://poc-ai.siteflow.co"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultTokenLeeway = 30 * time.Second
	DefaultMaxAttempts = 3

	MaxHTTPTimeout = 10 * time.Minute
	MaxTokenLeeway = time.Hour
	MaxMaxAttempts = 10
)

var (
	ErrMissingClientID = errors.New(
		"client ID not configured: set SITEFLOW_CLIENT_ID",
	)
	ErrMissingClientSecret = errors.New(
		"client secret not configured: set SITEFLOW_CLIENT_SECRET",
	)
	ErrMissingProjectID = errors.New(
		"project ID not configured: set SITEFLOW_PROJECT_ID",
	)
	ErrInvalidServerURL   = errors.New("invalid server URL")
	ErrInvalidHTTPTimeout = errors.New("HTTP timeout must be positive")
	ErrInvalidTokenLeeway = errors.New("token leeway cannot be negative")
	ErrInvalidMaxAttempts = errors.New("max attempts must be at least 1")
)

// NewDefaultConfig creates a configuration with sensible defaults for
// everything except the credentials, which have no defaults
func NewDefaultConfig() *Config {
	return &Config{
		ServerURL:   DefaultServerURL,
		HTTPTimeout: DefaultHTTPTimeout,
		TokenLeeway: DefaultTokenLeeway,
		MaxAttempts: DefaultMaxAttempts,
		LogLevel:    "info",
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed
func (c *Config) LoadFromEnv() error {
	if serverURL := os.Getenv("SITEFLOW_SERVER_URL"); serverURL != "" {
		c.ServerURL = serverURL
	}
	if clientID := os.Getenv("SITEFLOW_CLIENT_ID"); clientID != "" {
		c.ClientID = clientID
	}
	if secret := os.Getenv("SITEFLOW_CLIENT_SECRET"); secret != "" {
		c.ClientSecret = secret
	}
	if projectID := os.Getenv("SITEFLOW_PROJECT_ID"); projectID != "" {
		c.ProjectID = api.ProjectID(projectID)
	}
	if familyID := os.Getenv("SITEFLOW_FAMILY_ID"); familyID != "" {
		c.FamilyID = api.FamilyID(familyID)
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}

	if err := loadEnvDuration(
		"HTTP_TIMEOUT", &c.HTTPTimeout, MaxHTTPTimeout,
	); err != nil {
		return err
	}
	if err := loadEnvDuration(
		"TOKEN_LEEWAY", &c.TokenLeeway, MaxTokenLeeway,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"RETRY_MAX_ATTEMPTS", &c.MaxAttempts, 0, MaxMaxAttempts,
	); err != nil {
		return err
	}

	return nil
}

// Validate checks that all configuration values are valid. Credential
// checks fail fast here, before any command can be dispatched
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	if c.ProjectID == "" {
		return ErrMissingProjectID
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidServerURL, c.ServerURL)
	}

	if c.HTTPTimeout <= 0 {
		return ErrInvalidHTTPTimeout
	}
	if c.TokenLeeway < 0 {
		return ErrInvalidTokenLeeway
	}
	if c.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	return nil
}

// loadEnvDuration reads key from the environment, parses it as a Go
// duration, and sets *dst if the value is in range
func loadEnvDuration(key string, dst *time.Duration, max time.Duration) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	if d < 0 || d > max {
		return fmt.Errorf("invalid %s: %s out of range [0, %s]",
			key, d, max)
	}
	*dst = d
	return nil
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max)
func loadEnvInt[T ~int](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}
