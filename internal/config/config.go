package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerkit/money"
	"github.com/ledgerkit/money/internal/logger"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding the config file.
const EnvPrefix = "MONEYCALC"

// Config holds the moneycalc configuration
type Config struct {
	Currency string // default currency for bare amounts
	Rounding string // default rounding mode
	Log      LogConfig

	curr money.Currency
	mode money.RoundingMode
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with MONEYCALC_ prefix (e.g., MONEYCALC_LOG_LEVEL)
// 2. moneycalc.toml found in one of paths, or in the working directory
// 3. Built-in defaults
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("moneycalc")
	v.SetConfigType("toml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Currency: v.GetString("currency"),
		Rounding: v.GetString("rounding"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration, ignoring any config file and
// environment variables.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.Rounding == "" {
		cfg.Rounding = money.HalfEven.String()
	}
	def := logger.DefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Format
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = def.Output
	}
}

// validate checks the configuration and resolves currency and rounding mode.
func (c *Config) validate() error {
	curr, err := money.ParseCurr(c.Currency)
	if err != nil {
		return fmt.Errorf("invalid currency: %w", err)
	}
	mode, err := money.ParseRoundingMode(c.Rounding)
	if err != nil {
		return fmt.Errorf("invalid rounding: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}
	c.curr, c.mode = curr, mode
	return nil
}

// DefaultCurrency returns the currency used for amounts written without a
// currency code.
func (c *Config) DefaultCurrency() money.Currency {
	return c.curr
}

// RoundingMode returns the configured rounding mode.
func (c *Config) RoundingMode() money.RoundingMode {
	return c.mode
}

// SetRounding overrides the rounding mode, e.g. from a command-line flag.
func (c *Config) SetRounding(name string) error {
	mode, err := money.ParseRoundingMode(name)
	if err != nil {
		return err
	}
	c.Rounding, c.mode = mode.String(), mode
	return nil
}

// Logger returns the logger configuration.
func (c *Config) Logger() *logger.Config {
	return &logger.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: c.Log.Output,
	}
}
