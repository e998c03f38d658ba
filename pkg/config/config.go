package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ValidOutputFormats lists the accepted output_format values
var ValidOutputFormats = []string{"auto", "table", "json"}

// Config holds application configuration
type Config struct {
	LogLevel     string        `yaml:"log_level" json:"log_level"`
	QueryTimeout time.Duration `yaml:"query_timeout" json:"query_timeout" default:"5s"`
	OutputFormat string        `yaml:"output_format" json:"output_format" default:"auto"` // auto, table, json
	Adapter      string        `yaml:"adapter" json:"adapter"`                            // e.g. hci1; empty selects the default adapter
}

// DefaultConfig returns default configuration values
func DefaultConfig() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query_timeout must not be negative: %s", c.QueryTimeout)
	}
	for _, f := range ValidOutputFormats {
		if c.OutputFormat == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format '%s': must be one of %v", c.OutputFormat, ValidOutputFormats)
}

// Level returns the configured log level. An empty level is PanicLevel,
// which keeps normal operation silent.
func (c *Config) Level() (logrus.Level, error) {
	switch c.LogLevel {
	case "":
		return logrus.PanicLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.PanicLevel, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
}

// NewLogger creates a configured logger instance.
// An invalid level falls back to PanicLevel; call Validate to catch it.
func (c *Config) NewLogger() *logrus.Logger {
	level, _ := c.Level()

	logger := logrus.New()
	logger.SetLevel(level)

	// Use structured logging format
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return logger
}
