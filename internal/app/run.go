package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ocastrof/descuentos/internal/ctxlog"
	"github.com/ocastrof/descuentos/internal/discount"
	"github.com/shopspring/decimal"
)

// Run merges the settings file into cfg, computes the discounted amount and
// writes it to the output. Calculator errors are returned unchanged so the
// caller can classify them.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, a.logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	effective, err := a.resolveConfig(ctx, cfg)
	if err != nil {
		return err
	}
	if effective != cfg {
		logger = newLogger(effective.LogLevel, effective.LogFormat, a.logW)
		ctx = ctxlog.WithLogger(ctx, logger)
		logger.Debug("Logger reconfigured from settings file.", "path", effective.SettingsPath)
	}

	// Compute validates the range of both inputs, so they are only
	// formatted for logging once it has accepted them.
	result, err := discount.Compute(effective.Amount, effective.Rate)
	if err != nil {
		logger.Debug("Discount computation rejected input.", "error", err)
		return err
	}
	logger.Info("Discount computed.",
		"amount", effective.Amount.String(),
		"rate", effective.Rate.String(),
		"result", result.String(),
	)

	if _, err := fmt.Fprintln(a.outW, FormatResult(result, effective.Precision)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// resolveConfig loads the settings file, if any, and returns the validated
// merged configuration. Without a settings file cfg is returned as is.
func (a *App) resolveConfig(ctx context.Context, cfg *Config) (*Config, error) {
	if cfg.SettingsPath == "" {
		return cfg, nil
	}
	if a.loader == nil {
		return nil, errors.New("a settings file was given but no settings loader is configured")
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading settings file.", "path", cfg.SettingsPath)

	settings, err := a.loader.Load(ctx, cfg.SettingsPath)
	if err != nil {
		return nil, err
	}

	merged, err := NewConfig(cfg.WithSettings(settings))
	if err != nil {
		return nil, fmt.Errorf("settings file %s: %w", cfg.SettingsPath, err)
	}
	return merged, nil
}

// FormatResult renders d for output. A negative precision prints the exact
// value without trailing zeros; otherwise d is rounded half away from zero
// to exactly precision fraction digits.
func FormatResult(d decimal.Decimal, precision int) string {
	if precision < 0 {
		return d.String()
	}
	return d.StringFixed(int32(precision))
}
