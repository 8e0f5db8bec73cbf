// Package config loads settings for the debounce command from a YAML file,
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/romdo/go-debounce/v2"
)

// Config holds all configuration for the debounce command.
type Config struct {
	Debounce DebounceConfig `yaml:"debounce"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DebounceConfig configures the debouncer shared by all subcommands.
type DebounceConfig struct {
	Wait     time.Duration `yaml:"wait"`
	MaxWait  time.Duration `yaml:"max_wait"`
	Leading  bool          `yaml:"leading"`
	Trailing bool          `yaml:"trailing"`
}

// WatchConfig configures the watch subcommand.
type WatchConfig struct {
	Paths      []string `yaml:"paths"`
	Ignore     []string `yaml:"ignore"`
	Command    []string `yaml:"command"`
	RunOnStart bool     `yaml:"run_on_start"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	NoColor bool   `yaml:"no_color"`
}

var (
	ErrNegativeWait = errors.New("wait must not be negative")
	ErrNoCommand    = errors.New("no command given")
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce: DebounceConfig{
			Wait: 250 * time.Millisecond,
		},
		Watch: WatchConfig{
			Paths:  []string{"."},
			Ignore: []string{"*~", "*.swp", "*.tmp", "#*#"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file at path on top of the defaults,
// followed by DEBOUNCE_* environment variable overrides. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DEBOUNCE_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DEBOUNCE_WAIT: %w", err)
		}
		c.Debounce.Wait = d
	}

	if v := os.Getenv("DEBOUNCE_MAX_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DEBOUNCE_MAX_WAIT: %w", err)
		}
		c.Debounce.MaxWait = d
	}

	if v := os.Getenv("DEBOUNCE_LEADING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEBOUNCE_LEADING: %w", err)
		}
		c.Debounce.Leading = b
	}

	if v := os.Getenv("DEBOUNCE_TRAILING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEBOUNCE_TRAILING: %w", err)
		}
		c.Debounce.Trailing = b
	}

	if v := os.Getenv("DEBOUNCE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// Validate checks the debounce settings.
func (c DebounceConfig) Validate() error {
	if c.Wait < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeWait, c.Wait)
	}

	return nil
}

// Validate checks the watch settings.
func (c WatchConfig) Validate() error {
	if len(c.Command) == 0 {
		return ErrNoCommand
	}

	return nil
}

// TrailingEdge reports whether the target is invoked on the trailing edge,
// which is the case unless only the leading edge was requested.
func (c DebounceConfig) TrailingEdge() bool {
	return c.Trailing || !c.Leading
}

// Options returns the debounce options described by c.
func (c DebounceConfig) Options() []debounce.Option {
	var opts []debounce.Option
	if c.Leading {
		opts = append(opts, debounce.Leading())
	}
	if c.Trailing {
		opts = append(opts, debounce.Trailing())
	}
	if c.MaxWait > 0 {
		opts = append(opts, debounce.MaxWait(c.MaxWait))
	}

	return opts
}
