package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/bonded/pkg/config"
)

// loadConfig reads the --config file (defaults when unset) and applies
// --log-level on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// --log-level takes precedence over the file
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configureLogger loads the configuration and creates a logger at its level.
// Normal runs stay silent (panic level) unless a level is configured.
func configureLogger(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("configuration: %w", err)
	}

	logger := cfg.NewLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.WithFields(logrus.Fields{
		"adapter": cfg.Adapter,
		"timeout": cfg.QueryTimeout,
		"format":  cfg.OutputFormat,
	}).Debug("Configuration loaded")

	return cfg, logger, nil
}
