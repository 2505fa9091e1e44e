package app

import (
	"errors"
	"fmt"

	"github.com/ocastrof/descuentos/internal/config"
	"github.com/shopspring/decimal"
)

// Option names shared by the command line and Config.Explicit.
const (
	OptionConfig    = "config"
	OptionLogLevel  = "log-level"
	OptionLogFormat = "log-format"
	OptionPrecision = "precision"
)

// Built-in defaults, used when neither a flag nor the settings file sets a value.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultPrecision = -1

	// MaxPrecision bounds the number of fraction digits printed.
	MaxPrecision = 64
)

// ErrInvalidConfig is wrapped by every validation error from NewConfig.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything a single run needs.
type Config struct {
	Amount decimal.Decimal
	Rate   decimal.Decimal

	// SettingsPath is an optional settings file; empty means none.
	SettingsPath string

	LogLevel  string
	LogFormat string
	// Precision is the number of fraction digits printed; -1 prints the
	// exact result.
	Precision int

	// Explicit names the options set on the command line. Settings file
	// values never replace them.
	Explicit map[string]bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%w: log level %q must be 'debug', 'info', 'warn', or 'error'", ErrInvalidConfig, cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%w: log format %q must be 'text' or 'json'", ErrInvalidConfig, cfg.LogFormat)
	}

	if cfg.Precision < -1 || cfg.Precision > MaxPrecision {
		return nil, fmt.Errorf("%w: precision %d must be between -1 and %d", ErrInvalidConfig, cfg.Precision, MaxPrecision)
	}

	return &cfg, nil
}

// WithSettings returns a copy of c where every value the settings file sets
// replaces the current one, unless that option was given explicitly.
func (c Config) WithSettings(s *config.Settings) Config {
	if s.IsEmpty() {
		return c
	}
	if s.LogLevel != nil && !c.Explicit[OptionLogLevel] {
		c.LogLevel = *s.LogLevel
	}
	if s.LogFormat != nil && !c.Explicit[OptionLogFormat] {
		c.LogFormat = *s.LogFormat
	}
	if s.Precision != nil && !c.Explicit[OptionPrecision] {
		c.Precision = *s.Precision
	}
	return c
}
