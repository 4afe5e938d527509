// Package config holds the service configuration: defaults, an optional JSON
// file merged over them, and validation.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/idelchi/foldersize/internal/dirstat"
	"github.com/idelchi/foldersize/internal/logging"
)

// Config configures the HTTP service.
type Config struct {
	// Addr is the listen address.
	Addr string `json:"addr"`
	// DefaultCount is the number of folders returned when a request omits count.
	DefaultCount int `json:"defaultCount"`
	// Concurrency bounds the subdirectories sized at once per request (0 = unbounded).
	Concurrency int `json:"concurrency"`
	// ReadHeaderTimeout limits how long the server waits for request headers.
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	// ShutdownTimeout limits graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
	// Debug enables debug logging.
	Debug bool `json:"debug"`
	// LogFormat is "text" or "json".
	LogFormat string `json:"logFormat"`
}

// fileConfig mirrors Config with optional fields, so a file only overrides what it sets.
type fileConfig struct {
	Addr              *string `json:"addr"`
	DefaultCount      *int    `json:"defaultCount"`
	Concurrency       *int    `json:"concurrency"`
	ReadHeaderTimeout *string `json:"readHeaderTimeout"`
	ShutdownTimeout   *string `json:"shutdownTimeout"`
	Debug             *bool   `json:"debug"`
	LogFormat         *string `json:"logFormat"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:              ":8080",
		DefaultCount:      dirstat.DefaultCount,
		Concurrency:       0,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		LogFormat:         logging.FormatText,
	}
}

// Load returns the defaults merged with the JSON file at path.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return merge(cfg, stored)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("addr must not be empty")
	case c.DefaultCount < 1:
		return fmt.Errorf("default count must be positive, got %d", c.DefaultCount)
	case c.Concurrency < 0:
		return fmt.Errorf("concurrency cannot be negative, got %d", c.Concurrency)
	case c.ReadHeaderTimeout <= 0:
		return fmt.Errorf("read header timeout must be positive, got %v", c.ReadHeaderTimeout)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	case c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON:
		return fmt.Errorf("invalid log format %q: must be one of [%s %s]", c.LogFormat, logging.FormatText, logging.FormatJSON)
	}

	return nil
}

func merge(base Config, stored fileConfig) (Config, error) {
	merged := base

	if stored.Addr != nil {
		merged.Addr = *stored.Addr
	}

	if stored.DefaultCount != nil {
		merged.DefaultCount = *stored.DefaultCount
	}

	if stored.Concurrency != nil {
		merged.Concurrency = *stored.Concurrency
	}

	if stored.ReadHeaderTimeout != nil {
		d, err := time.ParseDuration(*stored.ReadHeaderTimeout)
		if err != nil {
			return base, fmt.Errorf("readHeaderTimeout: %w", err)
		}

		merged.ReadHeaderTimeout = d
	}

	if stored.ShutdownTimeout != nil {
		d, err := time.ParseDuration(*stored.ShutdownTimeout)
		if err != nil {
			return base, fmt.Errorf("shutdownTimeout: %w", err)
		}

		merged.ShutdownTimeout = d
	}

	if stored.Debug != nil {
		merged.Debug = *stored.Debug
	}

	if stored.LogFormat != nil {
		merged.LogFormat = *stored.LogFormat
	}

	return merged, nil
}
