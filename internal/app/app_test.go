package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ocastrof/descuentos/internal/config"
	"github.com/ocastrof/descuentos/internal/discount"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader is a config.Loader that returns canned settings.
type fakeLoader struct {
	settings *config.Settings
	err      error
	calls    []string
}

func (f *fakeLoader) Load(_ context.Context, path string) (*config.Settings, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func baseConfig(t *testing.T, amount, rate string) *Config {
	t.Helper()
	cfg, err := NewConfig(Config{
		Amount:    decimal.RequireFromString(amount),
		Rate:      decimal.RequireFromString(rate),
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Precision: DefaultPrecision,
	})
	require.NoError(t, err)
	return cfg
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		cfg       Config
		expectErr string
	}{
		{name: "defaults", cfg: Config{LogLevel: "warn", LogFormat: "text", Precision: -1}},
		{name: "json debug fixed precision", cfg: Config{LogLevel: "debug", LogFormat: "json", Precision: 2}},
		{name: "max precision", cfg: Config{LogLevel: "error", LogFormat: "text", Precision: MaxPrecision}},
		{name: "error - unknown level", cfg: Config{LogLevel: "loud", LogFormat: "text"}, expectErr: `log level "loud"`},
		{name: "error - unknown format", cfg: Config{LogLevel: "info", LogFormat: "xml"}, expectErr: `log format "xml"`},
		{name: "error - precision below -1", cfg: Config{LogLevel: "info", LogFormat: "text", Precision: -2}, expectErr: "precision -2"},
		{name: "error - precision too large", cfg: Config{LogLevel: "info", LogFormat: "text", Precision: MaxPrecision + 1}, expectErr: "precision 65"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(tc.cfg)

			if tc.expectErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tc.expectErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.LogLevel, got.LogLevel)
			assert.Equal(t, tc.cfg.Precision, got.Precision)
		})
	}
}

func TestConfig_WithSettings(t *testing.T) {
	t.Parallel()

	settings := &config.Settings{
		LogLevel:  strPtr("debug"),
		LogFormat: strPtr("json"),
		Precision: intPtr(2),
	}

	t.Run("settings fill unset options", func(t *testing.T) {
		t.Parallel()
		cfg := Config{LogLevel: "warn", LogFormat: "text", Precision: -1}

		got := cfg.WithSettings(settings)

		assert.Equal(t, "debug", got.LogLevel)
		assert.Equal(t, "json", got.LogFormat)
		assert.Equal(t, 2, got.Precision)
		assert.Equal(t, "warn", cfg.LogLevel, "receiver must not be modified")
	})

	t.Run("explicit options win", func(t *testing.T) {
		t.Parallel()
		cfg := Config{
			LogLevel:  "error",
			LogFormat: "text",
			Precision: 0,
			Explicit:  map[string]bool{OptionLogLevel: true, OptionPrecision: true},
		}

		got := cfg.WithSettings(settings)

		assert.Equal(t, "error", got.LogLevel)
		assert.Equal(t, "json", got.LogFormat)
		assert.Equal(t, 0, got.Precision)
	})

	t.Run("empty settings change nothing", func(t *testing.T) {
		t.Parallel()
		cfg := Config{LogLevel: "info", LogFormat: "text", Precision: 3}

		assert.Equal(t, cfg, cfg.WithSettings(&config.Settings{}))
		assert.Equal(t, cfg, cfg.WithSettings(nil))
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		amount    string
		rate      string
		precision int
		expected  string
	}{
		{name: "fifteen percent", amount: "100", rate: "15", precision: -1, expected: "85\n"},
		{name: "ten percent", amount: "100", rate: "10", precision: -1, expected: "90\n"},
		{name: "exact decimals", amount: "99.99", rate: "12.5", precision: -1, expected: "87.49125\n"},
		{name: "rounded to cents", amount: "99.99", rate: "15", precision: 2, expected: "84.99\n"},
		{name: "fixed precision pads", amount: "100", rate: "15", precision: 2, expected: "85.00\n"},
		{name: "zero precision rounds half up", amount: "1", rate: "50", precision: 0, expected: "1\n"},
		{name: "full discount", amount: "100", rate: "100", precision: -1, expected: "0\n"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			cfg := baseConfig(t, tc.amount, tc.rate)
			cfg.Precision = tc.precision
			out, logs := &bytes.Buffer{}, &bytes.Buffer{}

			// --- Act ---
			err := NewApp(out, logs, nil).Run(context.Background(), cfg)

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
			assert.Empty(t, logs.String(), "nothing should be logged at the default level")
		})
	}
}

func TestApp_Run_CalculatorErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		amount    string
		rate      string
		expectErr error
	}{
		{name: "negative amount", amount: "-1", rate: "10", expectErr: discount.ErrInvalidAmount},
		{name: "rate above 100", amount: "100", rate: "101", expectErr: discount.ErrInvalidRate},
		{name: "negative rate", amount: "100", rate: "-5", expectErr: discount.ErrInvalidRate},
		{name: "amount too large to print", amount: "1e300000000", rate: "15", expectErr: discount.ErrOutOfRange},
		{name: "rate with extreme exponent", amount: "100", rate: "1e-2147483648", expectErr: discount.ErrOutOfRange},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			err := NewApp(out, nil, nil).Run(context.Background(), baseConfig(t, tc.amount, tc.rate))

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectErr)
			assert.Empty(t, out.String(), "no result may be printed on failure")
		})
	}
}

func TestApp_Run_SettingsFile(t *testing.T) {
	t.Parallel()

	t.Run("settings apply to output and logging", func(t *testing.T) {
		t.Parallel()

		loader := &fakeLoader{settings: &config.Settings{
			Source:    "settings.hcl",
			LogLevel:  strPtr("info"),
			LogFormat: strPtr("json"),
			Precision: intPtr(2),
		}}
		cfg := baseConfig(t, "99.99", "15")
		cfg.SettingsPath = "settings.hcl"
		out, logs := &bytes.Buffer{}, &bytes.Buffer{}

		err := NewApp(out, logs, loader).Run(context.Background(), cfg)

		require.NoError(t, err)
		assert.Equal(t, []string{"settings.hcl"}, loader.calls)
		assert.Equal(t, "84.99\n", out.String())

		lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
		require.Len(t, lines, 1, "expected exactly one info record, got: %s", logs.String())
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
		assert.Equal(t, "Discount computed.", record["msg"])
		assert.Equal(t, "84.9915", record["result"])
	})

	t.Run("explicit precision beats settings file", func(t *testing.T) {
		t.Parallel()

		loader := &fakeLoader{settings: &config.Settings{Precision: intPtr(2)}}
		cfg := baseConfig(t, "99.99", "15")
		cfg.SettingsPath = "settings.hcl"
		cfg.Explicit = map[string]bool{OptionPrecision: true}
		out := &bytes.Buffer{}

		require.NoError(t, NewApp(out, nil, loader).Run(context.Background(), cfg))
		assert.Equal(t, "84.9915\n", out.String())
	})

	t.Run("loader error is returned unchanged", func(t *testing.T) {
		t.Parallel()

		loadErr := &config.LoadError{Path: "settings.hcl", Err: errors.New("boom")}
		cfg := baseConfig(t, "100", "15")
		cfg.SettingsPath = "settings.hcl"
		out := &bytes.Buffer{}

		err := NewApp(out, nil, &fakeLoader{err: loadErr}).Run(context.Background(), cfg)

		require.Error(t, err)
		var got *config.LoadError
		require.ErrorAs(t, err, &got)
		assert.Same(t, loadErr, got)
		assert.Empty(t, out.String())
	})

	t.Run("invalid settings value", func(t *testing.T) {
		t.Parallel()

		loader := &fakeLoader{settings: &config.Settings{LogLevel: strPtr("verbose")}}
		cfg := baseConfig(t, "100", "15")
		cfg.SettingsPath = "settings.hcl"

		err := NewApp(nil, nil, loader).Run(context.Background(), cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "settings file settings.hcl")
	})

	t.Run("missing loader", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig(t, "100", "15")
		cfg.SettingsPath = "settings.hcl"

		err := NewApp(nil, nil, nil).Run(context.Background(), cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no settings loader")
	})
}

func TestApp_Run_DebugLogging(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t, "100", "15")
	cfg.LogLevel = "debug"
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	require.NoError(t, NewApp(out, logs, nil).Run(context.Background(), cfg))

	logged := logs.String()
	assert.Contains(t, logged, "Discount computed.")
	assert.Contains(t, logged, "amount=100")
	assert.Contains(t, logged, "result=85")
	assert.NotContains(t, out.String(), "level=", "logs must not leak into the result output")
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	d := decimal.RequireFromString("87.49125")
	assert.Equal(t, "87.49125", FormatResult(d, -1))
	assert.Equal(t, "87", FormatResult(d, 0))
	assert.Equal(t, "87.49", FormatResult(d, 2))
	assert.Equal(t, "87.4913", FormatResult(d, 4))
	assert.Equal(t, "87.491250", FormatResult(d, 6))
}
