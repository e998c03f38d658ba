// Package goble implements device.Provider with go-ble.
//
// go-ble can tell whether the host has a usable Bluetooth controller, but
// CoreBluetooth keeps the bonded-device list private, so adapters returned
// here fail every bonded-device query with device.ErrUnsupported.
package goble

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-ble/ble"
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
)

// Probe is the part of ble.Device used to detect the controller
type Probe interface {
	Address() ble.Addr
	Stop() error
}

// DeviceFactory opens the platform HCI device (can be overridden in tests).
// It is set by the platform-specific file; nil means go-ble has no backend here.
//
//nolint:revive // DeviceFactory name is intentional for test mocking
var DeviceFactory func() (Probe, error)

// Provider probes the controller through DeviceFactory
type Provider struct {
	logger *logrus.Logger
}

// NewProvider creates a go-ble backed provider
func NewProvider(logger *logrus.Logger) *Provider {
	if logger == nil {
		logger = logrus.New()
	}
	return &Provider{logger: logger}
}

// DefaultAdapter implements device.Provider
func (p *Provider) DefaultAdapter(ctx context.Context) (device.Adapter, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if DeviceFactory == nil {
		p.logger.Debug("go-ble has no backend on this platform")
		return nil, false, nil
	}

	dev, err := DeviceFactory()
	if err != nil {
		err = NormalizeError(err)
		switch {
		case errors.Is(err, device.ErrUnsupported):
			p.logger.WithError(err).Debug("Bluetooth hardware not supported")
			return nil, false, nil
		case errors.Is(err, device.ErrBluetoothOff):
			// The controller exists; it is only switched off.
			p.logger.WithError(err).Debug("Bluetooth controller is powered off")
			return &Adapter{}, true, nil
		default:
			return nil, false, fmt.Errorf("failed to create BLE device: %w", err)
		}
	}
	defer func() {
		if err := dev.Stop(); err != nil {
			p.logger.WithError(err).Debug("Failed to stop BLE device")
		}
	}()

	var addr string
	if a := dev.Address(); a != nil {
		addr = a.String()
	}
	return &Adapter{address: addr}, true, nil
}

// Adapter is the host controller seen through go-ble
type Adapter struct {
	address string
}

func (a *Adapter) ID() string {
	return "default"
}

func (a *Adapter) Address() string {
	return a.address
}

// BondedDevices always fails: CoreBluetooth does not enumerate bonded peers
func (a *Adapter) BondedDevices(ctx context.Context) ([]device.BondedDevice, error) {
	return nil, fmt.Errorf("%w: listing bonded devices is not available through CoreBluetooth", device.ErrUnsupported)
}

// BondedDetails always fails, see BondedDevices
func (a *Adapter) BondedDetails(ctx context.Context) ([]device.Details, error) {
	return nil, fmt.Errorf("%w: listing bonded devices is not available through CoreBluetooth", device.ErrUnsupported)
}
