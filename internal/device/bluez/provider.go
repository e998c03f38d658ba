// Package bluez implements device.Provider on top of the BlueZ D-Bus API.
//
// All state is read from a single ObjectManager.GetManagedObjects call per
// operation; the package never writes adapter or device properties.
package bluez

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
)

// Provider looks up BlueZ adapters through an ObjectSource
type Provider struct {
	source      ObjectSource
	adapterName string
	logger      *logrus.Logger
}

// NewProviderWithSource creates a Provider reading objects from source.
// adapterName selects an adapter by path or name ("hci1"); empty selects the first one.
func NewProviderWithSource(source ObjectSource, adapterName string, logger *logrus.Logger) *Provider {
	if logger == nil {
		logger = logrus.New()
	}
	return &Provider{
		source:      source,
		adapterName: adapterName,
		logger:      logger,
	}
}

// DefaultAdapter implements device.Provider
func (p *Provider) DefaultAdapter(ctx context.Context) (device.Adapter, bool, error) {
	objs, err := p.source.ManagedObjects(ctx)
	if err != nil {
		err = NormalizeError(err)
		if errors.Is(err, errNoBluetoothStack) {
			p.logger.WithError(err).Debug("BlueZ not reachable, reporting no adapter")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to list BlueZ objects: %w", err)
	}

	ix := newObjectIndex(objs)
	adapters := ix.adapters()
	path, ok := matchAdapter(adapters, p.adapterName)
	if !ok {
		p.logger.WithFields(logrus.Fields{
			"requested": p.adapterName,
			"adapters":  len(adapters),
		}).Debug("No matching BlueZ adapter")
		return nil, false, nil
	}

	props, _ := ix.adapterProps(path)
	a := &Adapter{
		path:    path,
		address: stringProp(props, "Address"),
		source:  p.source,
		logger:  p.logger,
	}
	p.logger.WithFields(logrus.Fields{
		"adapter": a.ID(),
		"address": a.address,
		"powered": boolProp(props, "Powered"),
	}).Debug("Selected BlueZ adapter")

	return a, true, nil
}

// Adapter is a BlueZ org.bluez.Adapter1 object
type Adapter struct {
	path    dbus.ObjectPath
	address string
	source  ObjectSource
	logger  *logrus.Logger
}

// ID returns the adapter's short name, e.g. "hci0"
func (a *Adapter) ID() string {
	return lastElement(a.path)
}

// Address returns the adapter's own hardware address
func (a *Adapter) Address() string {
	return a.address
}

// Path returns the adapter's D-Bus object path
func (a *Adapter) Path() dbus.ObjectPath {
	return a.path
}

// BondedDevices implements device.Adapter by re-reading the object tree,
// so the result reflects pairing changes made since the adapter was selected.
func (a *Adapter) BondedDevices(ctx context.Context) ([]device.BondedDevice, error) {
	devs, err := a.readBonded(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]device.BondedDevice, 0, len(devs))
	for _, d := range devs {
		out = append(out, d)
	}
	return out, nil
}

// BondedDetails implements device.Adapter
func (a *Adapter) BondedDetails(ctx context.Context) ([]device.Details, error) {
	devs, err := a.readBonded(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]device.Details, 0, len(devs))
	for _, d := range devs {
		details, invalid := d.details()
		if len(invalid) > 0 {
			a.logger.WithFields(logrus.Fields{
				"device": d.path,
				"uuids":  invalid,
			}).Debug("Skipping malformed service UUIDs")
		}
		out = append(out, details)
	}
	return out, nil
}

func (a *Adapter) readBonded(ctx context.Context) ([]*bondedDevice, error) {
	objs, err := a.source.ManagedObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list BlueZ objects: %w", NormalizeError(err))
	}

	ix := newObjectIndex(objs)
	if _, ok := ix.adapterProps(a.path); !ok {
		return nil, fmt.Errorf("adapter %s is no longer present", a.path)
	}

	devs := ix.bondedDevices(a.path)
	a.logger.WithFields(logrus.Fields{
		"adapter": a.ID(),
		"bonded":  len(devs),
	}).Debug("Read bonded devices")
	return devs, nil
}

// bondedDevice is an org.bluez.Device1 object in the bonded set
type bondedDevice struct {
	path  dbus.ObjectPath
	props map[string]dbus.Variant
}

// Name returns the remote name; empty when BlueZ has not resolved one
func (d *bondedDevice) Name() string {
	return stringProp(d.props, "Name")
}

func (d *bondedDevice) Address() string {
	return stringProp(d.props, "Address")
}

func (d *bondedDevice) details() (device.Details, []string) {
	uuids, invalid := uuidsProp(d.props)
	return device.Details{
		Record:    device.NewRecord(d),
		Alias:     stringProp(d.props, "Alias"),
		Connected: boolProp(d.props, "Connected"),
		Trusted:   boolProp(d.props, "Trusted"),
		UUIDs:     uuids,
	}, invalid
}
