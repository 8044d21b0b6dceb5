// Package config loads process configuration for the CLI and server
// bindings (max input size, log level, listen address) — ambient plumbing
// spec.md is silent on, since it specifies a library, not a service.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the settings internal/driver and cmd/hogqlserver need at
// process start. internal/convert and internal/driver never read it
// directly — they take MaxInputBytes as a var cmd/* assigns, keeping the
// front end itself config-agnostic (spec.md §5's "pure function of input").
type Config struct {
	MaxInputBytes int    `koanf:"max_input_bytes"`
	LogLevel      string `koanf:"log_level"`
	ListenAddr    string `koanf:"listen_addr"`
}

// Default returns the configuration used when no file is given and no
// HOGQL_* environment variable overrides a field.
func Default() *Config {
	return &Config{
		MaxInputBytes: 64 * 1024,
		LogLevel:      "info",
		ListenAddr:    ":8080",
	}
}

// Load reads configuration from an optional JSON file at path, then layers
// HOGQL_* environment variables on top, then unmarshals onto the defaults.
// An empty path skips the file layer; a missing file is not an error (the
// defaults and environment still apply), matching the teacher CLI's
// "use defaults if config doesn't exist" fallback.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("HOGQL_", ".", func(s string) string {
		return envToKey(s[len("HOGQL_"):])
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// envToKey maps MAX_INPUT_BYTES -> max_input_bytes by lowercasing it; the
// caller has already removed the HOGQL_ prefix. This mirrors the teacher
// CLI's own env-var convention.
func envToKey(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// SetupLogger configures the package-level charmbracelet/log logger from
// levelStr ("debug","info","warn","error"), used by cmd/hogqlserver only —
// the front end packages never log (spec.md §5).
func SetupLogger(levelStr string) {
	lvl, err := log.ParseLevel(levelStr)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
