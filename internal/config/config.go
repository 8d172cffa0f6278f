// Package config loads dirsize settings from defaults, an optional YAML file,
// DIRSIZE_* environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/idelchi/dirsize/internal/dirsize"
)

// Default configuration values.
const (
	// DefaultMinSize shows every entry.
	DefaultMinSize = "0B"

	// DefaultOutput is the default output format.
	DefaultOutput = "table"

	// EnvPrefix prefixes environment variables, e.g. DIRSIZE_MIN_SIZE.
	EnvPrefix = "DIRSIZE"
)

// Outputs lists the supported output formats.
var Outputs = []string{"table", "json", "plain"} //nolint:gochecknoglobals // Config constant

// unitPattern matches sizes with a single-letter unit, optionally followed by "B" (e.g. "4MB", "1.5k").
var unitPattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([KMGTPE])B?\s*$`)

// ErrInvalid is returned for configuration values that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings of one invocation.
type Config struct {
	// MinSize is the threshold as a human readable size (e.g. 10MB).
	MinSize string `mapstructure:"min_size"`
	// Workers is the number of entries sized concurrently (0 = default).
	Workers int `mapstructure:"workers"`
	// Output is the output format.
	Output string `mapstructure:"output"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// Dir returns the directory searched for config.yaml.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "dirsize")
}

// Load resolves the configuration using v, which may already have flags bound.
// An explicit cfgFile must exist; the default location is optional.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("min_size", DefaultMinSize)
	v.SetDefault("workers", dirsize.DefaultWorkers)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(c.Output)

	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("%w: output format %q: must be one of %v", ErrInvalid, c.Output, Outputs)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", ErrInvalid)
	}

	if _, err := c.MinBytes(); err != nil {
		return err
	}

	return nil
}

// MinBytes parses MinSize into bytes. An empty value means 0.
// Units are base 1024 whether written as "MB" or "MiB", matching FormatSize.
func (c *Config) MinBytes() (int64, error) {
	if c.MinSize == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(binaryUnits(c.MinSize))
	if err != nil {
		return 0, fmt.Errorf("%w: min-size %q: %w", ErrInvalid, c.MinSize, err)
	}

	return int64(size), nil //nolint:gosec // Size conversion from humanize is safe
}

// binaryUnits rewrites "4MB" or "4m" as "4 MiB" so humanize parses it in base 1024.
func binaryUnits(size string) string {
	m := unitPattern.FindStringSubmatch(size)
	if m == nil {
		return size
	}

	return m[1] + " " + strings.ToUpper(m[2]) + "iB"
}
