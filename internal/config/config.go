// Package config loads vectorizer settings from defaults, a TOML file and
// per-call overrides.
//
// Settings are resolved in increasing order of precedence:
//
//  1. Built-in defaults (Default)
//  2. The TOML config file (~/.image-vectorize/config.toml or --config)
//  3. Command-line flags
//  4. Per-call arguments such as MCP tool parameters (Overrides)
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/image-vectorize/internal/imaging"
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

const (
	dirName  = ".image-vectorize"
	fileName = "config.toml"
)

// SuperResolution configures the optional external upscaling model.
type SuperResolution struct {
	// Command is the executable to run. Empty disables super-resolution and
	// upscaling uses Lanczos resampling only.
	Command string `toml:"command"`

	// Args is the argument template; see imaging.CommandUpscaler.
	Args []string `toml:"args"`

	// TimeoutSeconds bounds a single model run. Zero means no limit.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Config is the complete set of settings.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// Vectorize holds the conversion options.
	Vectorize vectorize.Options `toml:"vectorize"`

	// SuperResolution configures the preferred upscaler.
	SuperResolution SuperResolution `toml:"super_resolution"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Vectorize: vectorize.DefaultOptions(),
	}
}

// DefaultPath returns ~/.image-vectorize/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the config file at path on top of the defaults.
//
// An empty path means DefaultPath; a missing default file is not an error
// and yields the defaults. An explicitly named file must exist. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.TOML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// TOML encodes c in the config file format.
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Vectorize.Validate(); err != nil {
		return err
	}
	if c.SuperResolution.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: super_resolution.timeout_seconds must not be negative", vectorize.ErrInvalidOptions)
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", vectorize.ErrInvalidOptions, name)
	}
}

// NewUpscaler returns the configured super-resolution upscaler, or nil when
// none is configured. The caller owns the upscaler and must Close it.
func (c *Config) NewUpscaler() *imaging.CommandUpscaler {
	sr := c.SuperResolution
	if sr.Command == "" {
		return nil
	}
	return imaging.NewCommandUpscaler(sr.Command, sr.Args, time.Duration(sr.TimeoutSeconds)*time.Second)
}
