//go:build linux

package bluez

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// SystemBusSource reads the BlueZ object tree over a private system bus
// connection opened per call.
type SystemBusSource struct{}

// ManagedObjects implements ObjectSource
func (SystemBusSource) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		if isBusMissing(err) {
			return nil, fmt.Errorf("%w: %v", errNoBluetoothStack, err)
		}
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	var objs ManagedObjects
	call := conn.Object(busName, rootPath).CallWithContext(ctx, getManagedObjectsCall, 0)
	if err := call.Store(&objs); err != nil {
		return nil, err
	}
	return objs, nil
}

// isBusMissing reports whether the system bus socket does not exist or nobody listens on it
func isBusMissing(err error) bool {
	return errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ECONNREFUSED)
}

// NewProvider creates a Provider backed by the system bus
func NewProvider(adapterName string, logger *logrus.Logger) *Provider {
	return NewProviderWithSource(SystemBusSource{}, adapterName, logger)
}
