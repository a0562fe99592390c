// Package config loads and validates console configuration from env and an
// optional .env file using Viper.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds console configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the base URL of the storefront backend (e.g. https://api.example.com).
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// AuthEndpoint is the login endpoint path on the backend.
	AuthEndpoint string `mapstructure:"AUTH_ENDPOINT"`
	// SessionMaxAge is the absolute session cap (e.g. "24h").
	SessionMaxAge string `mapstructure:"SESSION_MAX_AGE"`
	// RevalidateInterval is the cadence of the periodic session recheck (e.g. "5m").
	RevalidateInterval string `mapstructure:"REVALIDATE_INTERVAL"`
	// RevalidateProbability is the chance a recheck tick also round-trips to the server (0..1).
	RevalidateProbability float64 `mapstructure:"REVALIDATE_PROBABILITY"`
	// StateDir is where the durable session store lives; defaults under the user home.
	StateDir string `mapstructure:"STATE_DIR"`
	// HTTPTimeout bounds each API call (e.g. "15s").
	HTTPTimeout string `mapstructure:"HTTP_TIMEOUT"`
	// OTLPEndpoint enables telemetry export when set (host:port or URL).
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext exporter connection.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored; env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("AUTH_ENDPOINT", "/api/admin/login")
	v.SetDefault("SESSION_MAX_AGE", "24h")
	v.SetDefault("REVALIDATE_INTERVAL", "5m")
	v.SetDefault("REVALIDATE_PROBABILITY", 0.2)
	v.SetDefault("STATE_DIR", "")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("config: API_BASE_URL must be set")
	}
	if cfg.RevalidateProbability < 0 || cfg.RevalidateProbability > 1 {
		return nil, errors.New("config: REVALIDATE_PROBABILITY must be between 0 and 1")
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.New("config: STATE_DIR must be set when no home directory is available")
		}
		cfg.StateDir = filepath.Join(home, ".storefront-admin")
	}

	return &cfg, nil
}

// MaxAge parses SessionMaxAge as a time.Duration. Returns 24h if unset or
// invalid.
func (c *Config) MaxAge() time.Duration {
	d, err := time.ParseDuration(c.SessionMaxAge)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// RevalidateEvery parses RevalidateInterval. Returns 5m if unset or invalid.
func (c *Config) RevalidateEvery() time.Duration {
	d, err := time.ParseDuration(c.RevalidateInterval)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// Timeout parses HTTPTimeout. Returns 15s if unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
