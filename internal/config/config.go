// Package config loads the tool configuration for stripimports.
//
// Values are layered, highest precedence first: CLI flags, environment
// variables (STRIPIMPORTS_ prefix), a config file (explicit via --config
// or a discovered .stripimports.yaml), and built-in defaults. None of
// these affect the filter rule itself, which takes no configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "STRIPIMPORTS"

var (
	logLevels  = []string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
	logFormats = []string{LogFormatText, LogFormatJSON}
)

// defaults registers every known key. Keys absent here are invisible to
// viper's Unmarshal when set only through the environment.
var defaults = map[string]any{
	"log-level":       LogLevelInfo,
	"log-format":      LogFormatText,
	"no-color":        false,
	"quiet":           false,
	"require-version": "",
}

// ErrVersionUnknown indicates the running binary's version string is not
// semver, so a require-version constraint cannot be checked against it.
var ErrVersionUnknown = errors.New("current version is not semver")

// Config holds the global settings for a stripimports run.
type Config struct {
	// LogLevel controls the verbosity of log output.
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" json:"logLevel"`

	// LogFormat controls the format of log output.
	// Valid values: text, json.
	LogFormat string `mapstructure:"log-format" json:"logFormat"`

	// NoColor disables colored output.
	NoColor bool `mapstructure:"no-color" json:"noColor"`

	// Quiet suppresses all log output below error level.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// RequireVersion is an optional semver constraint the running binary
	// must satisfy. Useful for build scripts that depend on behavior
	// introduced in a particular release.
	RequireVersion string `mapstructure:"require-version" json:"requireVersion"`

	// ConfigFile is the resolved path to the config file used.
	// Set after Load() — not read from config itself.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatText,
	}
}

// Validate rejects unknown levels and formats and unparseable version
// constraints before they reach the logging or version-gate layers.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q: must be one of %s", c.LogLevel, strings.Join(logLevels, ", "))
	}

	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of %s", c.LogFormat, strings.Join(logFormats, ", "))
	}

	if c.RequireVersion != "" {
		if _, err := semver.NewConstraint(c.RequireVersion); err != nil {
			return fmt.Errorf("invalid require-version %q: %w", c.RequireVersion, err)
		}
	}

	return nil
}

// EffectiveLogLevel returns the level the logger should use. Quiet wins
// over the configured level and forces "error".
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// CheckVersion verifies that current satisfies the require-version
// constraint. An empty constraint always passes. Development builds
// with an unparseable version return ErrVersionUnknown so callers can
// warn and continue.
func (c *Config) CheckVersion(current string) error {
	if c.RequireVersion == "" || c.RequireVersion == current {
		return nil
	}

	constraint, err := semver.NewConstraint(c.RequireVersion)
	if err != nil {
		return fmt.Errorf("invalid require-version %q: %w", c.RequireVersion, err)
	}

	v, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrVersionUnknown, current)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("version %q does not satisfy require-version %q", current, c.RequireVersion)
	}

	return nil
}

// Load builds the configuration for cmd. A fresh viper instance is used
// on every call so Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := loadFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFile reads the explicit config file when one is given, or tries
// the discovery paths. A missing file is an error only in explicit mode.
func loadFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	v.SetConfigName(".stripimports")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "stripimports"))
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	// A file was discovered but could not be parsed.
	return fmt.Errorf("parsing config file: %w", err)
}

// bindFlags binds cmd's own flags plus the persistent flags of every
// command from cmd up to the root, so subcommands inherit the global
// flag set.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts a Config from ctx, falling back to Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
