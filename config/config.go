// SPDX-License-Identifier: MIT
// Package: bedrock/config
//
// config.go - YAML configuration with an environment overlay.

// Package config loads the settings the bedrock command needs to size its
// worker pool, configure logging and expose metrics.
//
// Sources are applied in order: built-in defaults, an optional YAML file,
// then the environment. BEDROCK_WORKERS sets the pool size; the older TP_SIZE
// variable is honored when BEDROCK_WORKERS is unset.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bedrock/internal/logging"
)

// Environment variables read by ApplyEnv.
const (
	EnvWorkers       = "BEDROCK_WORKERS"
	EnvLegacyWorkers = "TP_SIZE"
	EnvLogLevel      = "BEDROCK_LOG_LEVEL"
	EnvMetricsAddr   = "BEDROCK_METRICS_ADDR"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level configuration.
type Config struct {
	// Workers is the pool size; 0 or negative means one worker per CPU.
	Workers  int           `yaml:"workers"`
	LogLevel string        `yaml:"log_level"` // debug, info, warn or error
	Metrics  MetricsConfig `yaml:"metrics"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"` // e.g. ":9090"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers:  0,
		LogLevel: "info",
		Metrics:  MetricsConfig{Enabled: false, Addr: ":9090"},
	}
}

// Load reads path over the defaults, applies the process environment and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment values obtained through lookup.
// A worker count that is not a positive integer is logged and reset to 0,
// so ResolveWorkers falls back to one worker per CPU.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for _, key := range []string{EnvWorkers, EnvLegacyWorkers} {
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			slog.Warn("ignoring non-positive worker count, using one worker per CPU",
				slog.String("env", key),
				slog.String("value", raw),
			)
			n = 0
		}
		c.Workers = n
		break
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok && v != "" {
		c.Metrics.Enabled = true
		c.Metrics.Addr = v
	}
}

// Validate checks if the configuration is valid. Any worker count is
// accepted: non-positive values select the per-CPU default.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics enabled without an address", ErrInvalid)
	}
	return nil
}

// ResolveWorkers returns the effective pool size: Workers when positive,
// runtime.NumCPU() otherwise.
func (c *Config) ResolveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
