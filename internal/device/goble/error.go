package goble

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/srg/bonded/internal/device"
)

// CoreBluetooth central manager states as reported by go-ble
const (
	stateUnsupported = 2
	statePoweredOff  = 4
)

var invalidStateRe = regexp.MustCompile(`invalid state: have=(\d+)`)

// NormalizeError maps known go-ble error strings to device sentinels.
// It ensures consistent handling even if the upstream library changes messages slightly.
// Returns wrapped errors to preserve original context.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if m := invalidStateRe.FindStringSubmatch(msg); m != nil {
		state, _ := strconv.Atoi(m[1])
		switch state {
		case statePoweredOff:
			return fmt.Errorf("%w: %v", device.ErrBluetoothOff, err)
		case stateUnsupported:
			return fmt.Errorf("%w: %v", device.ErrUnsupported, err)
		default:
			return err
		}
	}
	return device.NormalizeError(err)
}
