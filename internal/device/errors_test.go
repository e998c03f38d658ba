package device_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/srg/bonded/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryError_Is(t *testing.T) {
	// GOAL: Verify errors.Is compares QueryError values by kind, through wrapping
	//
	// TEST SCENARIO: Build errors of both kinds → wrap them → errors.Is matches only the same kind

	unavailable := fmt.Errorf("lookup: %w", device.NewUnavailable(errors.New("no system bus")))
	failed := fmt.Errorf("lookup: %w", device.NewQueryFailed(errors.New("access denied")))

	assert.ErrorIs(t, unavailable, device.ErrUnavailable, "unavailable MUST match ErrUnavailable")
	assert.NotErrorIs(t, unavailable, device.ErrQueryFailed, "unavailable MUST NOT match ErrQueryFailed")
	assert.ErrorIs(t, failed, device.ErrQueryFailed, "query failure MUST match ErrQueryFailed")
	assert.NotErrorIs(t, failed, device.ErrUnavailable, "query failure MUST NOT match ErrUnavailable")
}

func TestQueryError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *device.QueryError
		expected string
	}{
		{
			name:     "unavailable has fixed message",
			err:      device.NewUnavailable(errors.New("dbus: connection refused")),
			expected: "Bluetooth not available",
		},
		{
			name:     "query failure keeps the cause message",
			err:      device.NewQueryFailed(errors.New("need BLUETOOTH_CONNECT permission")),
			expected: "need BLUETOOTH_CONNECT permission",
		},
		{
			name:     "query failure without cause",
			err:      device.NewQueryFailed(nil),
			expected: "bonded device query failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	var nilErr *device.QueryError
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.False(t, nilErr.Is(device.ErrUnavailable))
}

func TestQueryError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := device.NewQueryFailed(cause)

	require.ErrorIs(t, err, cause, "cause MUST stay reachable through Unwrap")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, device.KindUnavailable, device.KindOf(fmt.Errorf("x: %w", device.ErrUnavailable)))
	assert.Equal(t, device.KindQueryFailed, device.KindOf(device.NewQueryFailed(errors.New("x"))))
	assert.Equal(t, device.KindQueryFailed, device.KindOf(errors.New("plain error")), "plain errors MUST count as query failures")
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectIsError error
	}{
		{
			name:          "bluetooth off",
			err:           errors.New("Bluetooth is turned off"),
			expectIsError: device.ErrBluetoothOff,
		},
		{
			name:          "adapter not powered",
			err:           errors.New("org.bluez.Error.Failed: Not Powered"),
			expectIsError: device.ErrBluetoothOff,
		},
		{
			name:          "operation not supported",
			err:           errors.New("operation not supported on this platform"),
			expectIsError: device.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := device.NormalizeError(tt.err)
			assert.ErrorIs(t, err, tt.expectIsError, "error chain MUST contain expected sentinel error")
			assert.Contains(t, err.Error(), tt.err.Error(), "normalized error MUST keep the original text")
		})
	}

	t.Run("passes through unknown errors", func(t *testing.T) {
		orig := errors.New("some other error")
		assert.Same(t, orig, device.NormalizeError(orig))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, device.NormalizeError(nil))
	})
}

type stubDevice struct{ name, addr string }

func (d stubDevice) Name() string    { return d.name }
func (d stubDevice) Address() string { return d.addr }

func TestNewRecord(t *testing.T) {
	rec := device.NewRecord(stubDevice{addr: "AA:BB:CC:DD:EE:FF"})

	assert.Equal(t, device.Record{Name: "", Address: "AA:BB:CC:DD:EE:FF"}, rec)
}
