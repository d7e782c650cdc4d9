package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the backend used when HEALTHTRACK_API_URL is unset.
const DefaultAPIBaseURL = "https://bright-swan-1tubes-sismul-cc0e96ef.koyeb.app/api"

// Provider is the read-only view of the configuration handed to components.
type Provider interface {
	GetAPIBaseURL() string
	GetAddr() string
	GetSessionSecret() string
	GetSessionFile() string
	GetHTTPTimeout() time.Duration
}

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL    string
	Addr          string
	SessionSecret string
	SessionFile   string
	HTTPTimeout   time.Duration

	// Bus tracing. Empty strings keep the tracer's defaults.
	TracingEnabled     bool
	TracingServiceName string
	TracingZipkinURL   string
}

// New loads configuration from a .env file, if any, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	cfg := &Config{
		APIBaseURL:    strings.TrimRight(getEnv("HEALTHTRACK_API_URL", DefaultAPIBaseURL), "/"),
		Addr:          getEnv("HEALTHTRACK_ADDR", ":3000"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionFile:   getEnv("HEALTHTRACK_SESSION_FILE", defaultSessionFile()),
		HTTPTimeout:   10 * time.Second,

		TracingServiceName: os.Getenv("PUBSUB_TRACING_SERVICE_NAME"),
		TracingZipkinURL:   os.Getenv("PUBSUB_TRACING_ZIPKIN_URL"),
	}
	cfg.TracingEnabled, _ = strconv.ParseBool(os.Getenv("PUBSUB_TRACING_ENABLED"))
	if raw := os.Getenv("HEALTHTRACK_HTTP_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.HTTPTimeout = d
		} else {
			cfg.HTTPTimeout = 0
		}
	}
	return cfg
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("HEALTHTRACK_API_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("HEALTHTRACK_API_URL must use http or https, got %q", u.Scheme)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HEALTHTRACK_HTTP_TIMEOUT must be a positive duration")
	}
	return nil
}

// ValidateServer adds the checks only the web front end needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.SessionSecret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

func (c *Config) GetAPIBaseURL() string         { return c.APIBaseURL }
func (c *Config) GetAddr() string               { return c.Addr }
func (c *Config) GetSessionSecret() string      { return c.SessionSecret }
func (c *Config) GetSessionFile() string        { return c.SessionFile }
func (c *Config) GetHTTPTimeout() time.Duration { return c.HTTPTimeout }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".healthtrack", "session.json")
	}
	return filepath.Join(home, ".healthtrack", "session.json")
}
