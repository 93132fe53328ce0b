package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	// Default listener settings
	defaultListenAddr = ":8000"

	// Default push settings
	defaultPushSchedule = "* * * * *"
	defaultPushJob      = "sensorsim"
	defaultPushTimeout  = 30 * time.Second

	// Default logging settings
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	defaultLogOutput = "stdout"

	redacted = "REDACTED"
)

// Config represents the complete server configuration
type Config struct {
	Listener ListenerConfig `yaml:"listener"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Push     PushConfig     `yaml:"push"`
}

// ListenerConfig holds HTTP server listener settings.
type ListenerConfig struct {
	// The listen address, defaults to :8000
	Addr string `yaml:"addr"`
}

// LoggingConfig defines logging behavior settings
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	Output    string `yaml:"output"`
	AddSource bool   `yaml:"add_source"`
}

// MetricsConfig controls what the /metrics endpoint exposes.
type MetricsConfig struct {
	// Also expose the Go runtime and process collectors
	RuntimeCollectors bool `yaml:"runtime_collectors"`
}

// PushConfig configures pushing the registry to a remote write endpoint.
// Pushing is disabled when URL is empty.
type PushConfig struct {
	URL      string        `yaml:"url"`
	Schedule string        `yaml:"schedule"`
	Prefix   string        `yaml:"prefix"`
	Job      string        `yaml:"job"`
	Instance string        `yaml:"instance"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether a remote write URL is configured.
func (p PushConfig) Enabled() bool {
	return p.URL != ""
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging level must be one of: %s", strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, c.Logging.Format) {
		return fmt.Errorf("logging format must be one of: %s", strings.Join(validFormats, ", "))
	}

	if c.Push.Enabled() {
		if _, err := url.Parse(c.Push.URL); err != nil {
			return fmt.Errorf("invalid push URL: %w", err)
		}
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Push.Schedule); err != nil {
			return fmt.Errorf("invalid push schedule %q: %w", c.Push.Schedule, err)
		}
		if c.Push.Timeout <= 0 {
			return fmt.Errorf("push timeout must be positive")
		}
	}

	return nil
}

// SetDefaults sets reasonable default values for optional fields
func (c *Config) SetDefaults() {
	if c.Listener.Addr == "" {
		c.Listener.Addr = defaultListenAddr
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaultLogOutput
	}
	if c.Push.Schedule == "" {
		c.Push.Schedule = defaultPushSchedule
	}
	if c.Push.Job == "" {
		c.Push.Job = defaultPushJob
	}
	if c.Push.Timeout == 0 {
		c.Push.Timeout = defaultPushTimeout
	}
}

// Redacted returns a copy of the config with credentials in the push URL masked.
func (c *Config) Redacted() *Config {
	out := *c
	if u, err := url.Parse(c.Push.URL); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
		out.Push.URL = u.String()
	}
	return &out
}

// LoadConfig reads the YAML config file at the given path and returns a Config struct
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
