package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
)

// Config holds process configuration read from the environment.
type Config struct {
	// LIFX
	Token     string        `env:"LIFX_API_TOKEN"`
	BaseURL   string        `env:"LIFX_API_BASE_URL" envDefault:"https://api.lifx.com/v1"`
	UserAgent string        `env:"LIFX_USER_AGENT" envDefault:"mcp-lifx-server/1.0"`
	Timeout   time.Duration `env:"LIFX_HTTP_TIMEOUT" envDefault:"0s"`

	// Storage
	DBPath string `env:"LIFX_DB_PATH"`

	// Observability
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over .env entries.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration. A missing token is not an
// error here: it is reported on each tool call instead.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid LIFX API base URL: %q", c.BaseURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	return nil
}

// LIFX returns the client configuration.
func (c *Config) LIFX() lifx.Config {
	return lifx.Config{
		Token:     c.Token,
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}

// SetupLogging points the global zerolog logger at stderr with the
// configured level and format. Stdout is reserved for the MCP transport.
func (c *Config) SetupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if c.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
