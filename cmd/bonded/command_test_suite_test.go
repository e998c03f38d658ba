package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
	"github.com/srg/bonded/internal/devicefactory"
	"github.com/srg/bonded/internal/testutils"
	"github.com/srg/bonded/pkg/config"
	"github.com/stretchr/testify/suite"
)

// CommandTestSuite runs cobra commands against an injected fake provider.
// All cmd/bonded test suites should embed this.
type CommandTestSuite struct {
	suite.Suite
	originalFactory func(*config.Config, *logrus.Logger) (device.Provider, error)
	originalNoColor bool

	// Provider is returned by the injected factory; FactoryErr fails it instead
	Provider   device.Provider
	FactoryErr error
	// LastConfig is the configuration the command handed to the factory
	LastConfig *config.Config

	stderr *bytes.Buffer
}

func (s *CommandTestSuite) SetupSuite() {
	s.originalFactory = devicefactory.ProviderFactory
	s.originalNoColor = color.NoColor
	color.NoColor = true

	devicefactory.ProviderFactory = func(cfg *config.Config, logger *logrus.Logger) (device.Provider, error) {
		s.LastConfig = cfg
		if s.FactoryErr != nil {
			return nil, s.FactoryErr
		}
		return s.Provider, nil
	}
}

func (s *CommandTestSuite) TearDownSuite() {
	devicefactory.ProviderFactory = s.originalFactory
	color.NoColor = s.originalNoColor
}

// SetupTest resets flag state so every test starts from the defaults
func (s *CommandTestSuite) SetupTest() {
	s.Provider = testutils.CreateBondedSet().Build()
	s.FactoryErr = nil
	s.LastConfig = nil
	s.stderr = new(bytes.Buffer)

	s.Require().NoError(rootCmd.PersistentFlags().Set("log-level", ""))
	s.Require().NoError(rootCmd.PersistentFlags().Set("config", ""))
	s.Require().NoError(rootCmd.Flags().Set("version", "false"))
	if help := rootCmd.Flags().Lookup("help"); help != nil {
		s.Require().NoError(help.Value.Set("false"))
	}

	listCmd.ResetFlags()
	initListFlags()
	invokeCmd.ResetFlags()
	initInvokeFlags()
}

// ExecuteCommand runs the root command with args and returns what was written to stdout.
func (s *CommandTestSuite) ExecuteCommand(args ...string) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(s.stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// Stderr returns what the last commands wrote to stderr (logs, usage)
func (s *CommandTestSuite) Stderr() string {
	return s.stderr.String()
}

// WriteConfig writes a YAML config file into a temp dir and returns its path
func (s *CommandTestSuite) WriteConfig(yaml string) string {
	path := filepath.Join(s.T().TempDir(), "bonded.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(yaml), 0o600), "config file MUST be written")
	return path
}
