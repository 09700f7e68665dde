// Package config loads a2abatch settings from an optional YAML file, a .env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ab "github.com/spetersoncode/a2abatch"
)

// Environment variables read by Load.
const (
	EnvConfigFile     = "A2A_CONFIG"
	EnvServerURL      = "A2A_SERVER_URL"
	EnvTimeout        = "A2A_TIMEOUT"
	EnvContinueOnFail = "A2A_CONTINUE_ON_FAIL"
	EnvLogLevel       = "A2A_LOG_LEVEL"
	EnvLogFormat      = "A2A_LOG_FORMAT"
	EnvPort           = "A2A_PORT"
	EnvAllowOrigins   = "A2A_ALLOW_ORIGINS"
)

// Config holds the settings shared by the commands.
type Config struct {
	// Agent
	ServerURL      string        `yaml:"server_url"`
	Timeout        time.Duration `yaml:"timeout"`
	ContinueOnFail bool          `yaml:"continue_on_fail"`

	// Logging
	LogLevel  string `yaml:"log_level"` // debug, info, warn, error
	LogFormat string `yaml:"log_format"`

	// HTTP server
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Timeout:      60 * time.Second,
		LogLevel:     "info",
		LogFormat:    "text",
		Port:         "8000",
		AllowOrigins: []string{"*"},
	}
}

// Load builds the configuration. Values are applied in order: defaults,
// the YAML file at path (or $A2A_CONFIG when path is empty), then the
// environment. A .env file is loaded if present (silent fail if not found).
// Load does not validate; call Validate once command-line overrides have
// been applied.
func Load(path string) (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ab.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return ab.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerURL = getEnvOrDefault(EnvServerURL, c.ServerURL)
	c.Timeout = getEnvDurationOrDefault(EnvTimeout, c.Timeout)
	c.ContinueOnFail = getEnvBoolOrDefault(EnvContinueOnFail, c.ContinueOnFail)
	c.LogLevel = getEnvOrDefault(EnvLogLevel, c.LogLevel)
	c.LogFormat = getEnvOrDefault(EnvLogFormat, c.LogFormat)
	c.Port = getEnvOrDefault(EnvPort, c.Port)
	c.AllowOrigins = getEnvListOrDefault(EnvAllowOrigins, c.AllowOrigins)
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvServerURL))
	} else if err := validateURL(c.ServerURL); err != nil {
		errs = append(errs, err)
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}

	if c.Port != "" {
		if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
			errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
		}
	}

	if len(errs) > 0 {
		return ab.NewConfigError("invalid configuration", errors.Join(errs...))
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("server URL %q has no host", raw)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
