package bluez

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/srg/bonded/internal/device"
)

// errNoBluetoothStack marks failures meaning BlueZ is not reachable at all:
// no system bus, or no bluetoothd owning org.bluez.
var errNoBluetoothStack = errors.New("bluetooth stack not available")

// D-Bus error names with a dedicated mapping
const (
	dbusServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"
	dbusNameHasNoOwner = "org.freedesktop.DBus.Error.NameHasNoOwner"
	dbusUnknownObject  = "org.freedesktop.DBus.Error.UnknownObject"
	bluezNotReady      = "org.bluez.Error.NotReady"
	bluezNotSupported  = "org.bluez.Error.NotSupported"
)

// NormalizeError maps D-Bus errors returned by BlueZ calls onto package and
// device sentinels. Returns wrapped errors to preserve original context.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}

	switch dbusErrorName(err) {
	case dbusServiceUnknown, dbusNameHasNoOwner, dbusUnknownObject:
		return fmt.Errorf("%w: %v", errNoBluetoothStack, err)
	case bluezNotReady:
		return fmt.Errorf("%w: %v", device.ErrBluetoothOff, err)
	case bluezNotSupported:
		return fmt.Errorf("%w: %v", device.ErrUnsupported, err)
	default:
		return device.NormalizeError(err)
	}
}

// dbusErrorName extracts the D-Bus error name from err, if any
func dbusErrorName(err error) string {
	var derr dbus.Error
	if errors.As(err, &derr) {
		return derr.Name
	}
	var pderr *dbus.Error
	if errors.As(err, &pderr) && pderr != nil {
		return pderr.Name
	}
	return ""
}
