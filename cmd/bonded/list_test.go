package main

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/srg/bonded/internal/device"
	"github.com/srg/bonded/internal/testutils"
	"github.com/stretchr/testify/suite"
)

type ListTestSuite struct {
	CommandTestSuite
}

func (s *ListTestSuite) TestList_Help() {
	// GOAL: Verify list command displays help text with all flags
	//
	// TEST SCENARIO: Execute list --help → returns success → output documents the flags

	output, err := s.ExecuteCommand("list", "--help")
	s.Require().NoError(err, "help command MUST succeed")

	s.Contains(output, "List the devices bonded to the default Bluetooth adapter", "help MUST contain command description")
	s.Contains(output, "--format", "help MUST document --format flag")
	s.Contains(output, "--adapter", "help MUST document --adapter flag")
	s.Contains(output, "--timeout", "help MUST document --timeout flag")
	s.Contains(output, "--long", "help MUST document --long flag")
}

func (s *ListTestSuite) TestList_JSON() {
	// GOAL: Verify JSON output carries one {name, address} object per bonded device
	//
	// TEST SCENARIO: Two bonded devices, one unnamed → JSON array with both, empty name preserved

	s.Provider = testutils.CreateBondedSetFromJSON(`[
		{"name": "Printer-01", "address": "00:11:22:33:44:55"},
		{"name": null, "address": "AA:BB:CC:DD:EE:FF"}
	]`).Build()

	output, err := s.ExecuteCommand("list", "--format", "json")
	s.Require().NoError(err)

	testutils.NewJSONAsserter(s.T()).Assert(output, `[
		{"name": "Printer-01", "address": "00:11:22:33:44:55"},
		{"name": "", "address": "AA:BB:CC:DD:EE:FF"}
	]`)
}

func (s *ListTestSuite) TestList_AutoIsJSONWhenPiped() {
	s.Provider = testutils.CreateBondedSet().WithDevice("Keyboard", "11:22:33:44:55:66").Build()

	output, err := s.ExecuteCommand("list")
	s.Require().NoError(err)

	testutils.NewJSONAsserter(s.T()).Assert(output, `[{"name": "Keyboard", "address": "11:22:33:44:55:66"}]`)
}

func (s *ListTestSuite) TestList_EmptySet() {
	// GOAL: Verify an adapter with nothing bonded is a success, not an error
	//
	// TEST SCENARIO: Empty bonded set → json prints [] and table prints the empty notice

	output, err := s.ExecuteCommand("list", "--format", "json")
	s.Require().NoError(err, "empty set MUST succeed")
	testutils.NewJSONAsserter(s.T()).Assert(output, `[]`)

	output, err = s.ExecuteCommand("list", "--format", "table")
	s.Require().NoError(err)
	s.Equal("No bonded devices\n", output)
}

func (s *ListTestSuite) TestList_Table() {
	s.Provider = testutils.CreateBondedSet().
		WithDevice("Printer-01", "00:11:22:33:44:55").
		WithDevice("", "AA:BB:CC:DD:EE:FF").
		Build()

	output, err := s.ExecuteCommand("list", "--format", "table")
	s.Require().NoError(err)

	testutils.NewTextAsserter(s.T()).Assert(output,
		"NAME        ADDRESS\n"+
			"Printer-01  00:11:22:33:44:55\n"+
			"-           AA:BB:CC:DD:EE:FF\n"+
			"\n"+
			"2 bonded device(s)\n")
}

func (s *ListTestSuite) TestList_Long() {
	sppUUID := uuid.MustParse("00001101-0000-1000-8000-00805f9b34fb")
	s.Provider = testutils.CreateBondedSet().
		WithFakeDevices(testutils.FakeDevice{
			DeviceName:    "Printer-01",
			DeviceAddress: "00:11:22:33:44:55",
			Connected:     true,
			UUIDs:         []uuid.UUID{sppUUID},
		}).
		Build()

	output, err := s.ExecuteCommand("list", "--long", "--format", "json")
	s.Require().NoError(err)
	testutils.NewJSONAsserter(s.T()).Assert(output, `[{
		"name": "Printer-01",
		"address": "00:11:22:33:44:55",
		"alias": "Printer-01",
		"connected": true,
		"trusted": false,
		"uuids": ["00001101-0000-1000-8000-00805f9b34fb"]
	}]`)

	output, err = s.ExecuteCommand("list", "--long", "--format", "table")
	s.Require().NoError(err)
	s.Contains(output, "CONNECTED", "long table MUST include the connection column")
	s.Contains(output, sppUUID.String(), "long table MUST list service UUIDs")
}

func (s *ListTestSuite) TestList_Failures() {
	// GOAL: Verify query failures surface as command errors with the right kind
	//
	// TEST SCENARIO: No adapter / read error / factory error → command fails, nothing on stdout

	tests := []struct {
		name        string
		setup       func()
		expectKind  device.ErrorKind
		expectInMsg string
	}{
		{
			name:        "no adapter",
			setup:       func() { s.Provider = testutils.CreateBondedSet().WithoutAdapter().Build() },
			expectKind:  device.KindUnavailable,
			expectInMsg: "Bluetooth not available",
		},
		{
			name: "read failure",
			setup: func() {
				s.Provider = testutils.CreateBondedSet().WithQueryError(errors.New("org.bluez.Error.Failed: adapter busy")).Build()
			},
			expectKind:  device.KindQueryFailed,
			expectInMsg: "adapter busy",
		},
		{
			name:        "provider panic",
			setup:       func() { s.Provider = testutils.CreateBondedSet().WithLookupPanic("bus exploded").Build() },
			expectKind:  device.KindQueryFailed,
			expectInMsg: "bus exploded",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setup()

			output, err := s.ExecuteCommand("list", "--format", "json")

			s.Require().Error(err, "failure MUST be returned")
			s.Empty(output, "failure MUST NOT print a device list")
			s.Equal(tt.expectKind, device.KindOf(err))
			s.Contains(FormatUserError(err), tt.expectInMsg)
		})
	}
}

func (s *ListTestSuite) TestList_FactoryError() {
	s.FactoryErr = errors.New("dbus: connection refused")

	_, err := s.ExecuteCommand("list")

	s.Require().Error(err)
	s.Contains(err.Error(), "failed to create Bluetooth provider")
}

func (s *ListTestSuite) TestList_FlagsOverrideConfig() {
	// GOAL: Verify config file values apply and explicit flags win over them
	//
	// TEST SCENARIO: Config selects hci2/json/2s → flags override adapter → factory sees merged config

	path := s.WriteConfig("adapter: hci2\noutput_format: table\nquery_timeout: 2s\n")

	_, err := s.ExecuteCommand("list", "--config", path)
	s.Require().NoError(err)
	s.Require().NotNil(s.LastConfig)
	s.Equal("hci2", s.LastConfig.Adapter, "config file adapter MUST apply")
	s.Equal("table", s.LastConfig.OutputFormat)
	s.Equal("2s", s.LastConfig.QueryTimeout.String())

	_, err = s.ExecuteCommand("list", "--config", path, "--adapter", "hci1", "--format", "json")
	s.Require().NoError(err)
	s.Equal("hci1", s.LastConfig.Adapter, "--adapter MUST override the config file")
	s.Equal("json", s.LastConfig.OutputFormat, "--format MUST override the config file")
}

func (s *ListTestSuite) TestList_InvalidArguments() {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "invalid format",
			args:     []string{"list", "--format", "xml"},
			expected: "invalid output format 'xml': must be one of [auto table json]",
		},
		{
			name:     "invalid log level",
			args:     []string{"list", "--log-level", "trace"},
			expected: "invalid log level: trace",
		},
		{
			name:     "missing config file",
			args:     []string{"list", "--config", "/nonexistent/bonded.yaml"},
			expected: "failed to read config",
		},
		{
			name:     "unexpected argument",
			args:     []string{"list", "hci0"},
			expected: "unknown command",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			_, err := s.ExecuteCommand(tt.args...)

			s.Require().Error(err, "invalid arguments MUST return error")
			s.Contains(err.Error(), tt.expected)
		})
	}
}

func TestListTestSuite(t *testing.T) {
	suite.Run(t, new(ListTestSuite))
}
