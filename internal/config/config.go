// Package config provides loading and validation of the conndiag TOML
// configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Error definitions for the config package
var (
	// ErrInvalidLogLevel is returned when the configured log level is not one
	// of debug, info, warn, error.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidQuoteLimit is returned when the quote output limit is negative.
	ErrInvalidQuoteLimit = errors.New("quote output limit must not be negative")
)

// Defaults applied to fields left empty in the file.
const (
	DefaultLogLevel    = "info"
	DefaultPlaceholder = "[REDACTED]"

	// DefaultQuoteLimit bounds quoted output; quoting a payload expands it
	// at most fourfold, so 4 MiB covers a 1 MiB payload.
	DefaultQuoteLimit = 4 * 1024 * 1024
)

// Config is the root of the conndiag configuration file.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Redact RedactConfig `toml:"redact"`
	Quote  QuoteConfig  `toml:"quote"`
}

// LogConfig controls the logging setup.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// RedactConfig controls how secrets are masked in output and logs.
type RedactConfig struct {
	// Placeholder replaces passwords in rendered connection strings.
	Placeholder string `toml:"placeholder"`
}

// QuoteConfig controls the payload quoting limits.
type QuoteConfig struct {
	// MaxOutputBytes caps the quoted output size. 0 means unlimited.
	MaxOutputBytes int `toml:"max_output_bytes"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: DefaultLogLevel},
		Redact: RedactConfig{Placeholder: DefaultPlaceholder},
		Quote:  QuoteConfig{MaxOutputBytes: DefaultQuoteLimit},
	}
}

// Load reads and validates the configuration file at path. A missing or
// empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's own flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(content)
}

// Parse decodes and validates configuration content. Unknown keys are
// rejected so typos surface instead of silently using defaults.
func Parse(content []byte) (*Config, error) {
	cfg := Default()

	decoder := toml.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	if c.Quote.MaxOutputBytes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuoteLimit, c.Quote.MaxOutputBytes)
	}
	return nil
}
