//go:build darwin

package goble

import (
	"github.com/go-ble/ble/darwin"
)

func init() {
	DeviceFactory = func() (Probe, error) {
		return darwin.NewDevice()
	}
}
