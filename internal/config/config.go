// Package config loads settings for the crossval command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CROSSVAL_"

// Config holds the settings shared by the crossval subcommands.
type Config struct {
	Folds   int     `koanf:"folds"`
	Seed    uint64  `koanf:"seed"`
	Samples int     `koanf:"samples"`
	Dim     int     `koanf:"dim"`
	Func    string  `koanf:"func"`
	Inputs  string  `koanf:"inputs"`
	Order   int     `koanf:"order"`
	Noise   float64 `koanf:"noise"`
	Log     Log     `koanf:"log"`
}

// Log controls the logger built by the logging package.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it. The
// data set matches the 101 sample, 3 feature, 7 fold linear regression check.
func Default() *Config {
	return &Config{
		Folds:   7,
		Seed:    0,
		Samples: 101,
		Dim:     3,
		Func:    "linear",
		Inputs:  "uniform",
		Order:   1,
		Noise:   0,
		Log: Log{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped if
// path is empty), and CROSSVAL_* environment variables, in increasing order of
// precedence. Nested keys use an underscore: CROSSVAL_LOG_LEVEL sets log.level.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps CROSSVAL_LOG_LEVEL to log.level and CROSSVAL_FOLDS to folds.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Folds < 1 {
		errs = append(errs, fmt.Errorf("folds must be positive, got %d", c.Folds))
	}
	if c.Samples < 1 {
		errs = append(errs, fmt.Errorf("samples must be positive, got %d", c.Samples))
	}
	if c.Dim < 1 {
		errs = append(errs, fmt.Errorf("dim must be positive, got %d", c.Dim))
	}
	if c.Order < 0 {
		errs = append(errs, fmt.Errorf("order must be non-negative, got %d", c.Order))
	}
	if c.Noise < 0 {
		errs = append(errs, fmt.Errorf("noise must be non-negative, got %v", c.Noise))
	}
	switch c.Func {
	case "linear", "rosenbrock":
	default:
		errs = append(errs, fmt.Errorf("unknown func %q", c.Func))
	}
	switch c.Inputs {
	case "uniform", "gaussian":
	default:
		errs = append(errs, fmt.Errorf("unknown inputs %q", c.Inputs))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
