package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/srg/bonded/bridge"
	"github.com/srg/bonded/internal/device"
)

// Command-level errors
var (
	// ErrRejected indicates a bridge call settled with a rejection.
	// The payload has already been printed when this is returned.
	ErrRejected = errors.New("call rejected")
)

// FormatUserError turns an error into the one-line message printed after "ERROR:"
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var rej *bridge.Rejection
	switch {
	case errors.As(err, &rej):
		return fmt.Sprintf("%s (%s)", rej.Message, rej.Code)
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out waiting for the Bluetooth stack"
	case errors.Is(err, device.ErrUnavailable):
		return "Bluetooth not available: no adapter found on this host"
	case errors.Is(err, device.ErrUnsupported):
		return fmt.Sprintf("not supported on this platform: %s", err)
	}
	return err.Error()
}
