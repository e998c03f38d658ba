package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/srg/bonded/internal/device"
)

const (
	DefaultAdapterID      = "hci0"
	DefaultAdapterAddress = "00:1A:7D:DA:71:13"
)

// FakeDevice is a bonded device handle with fixed values
type FakeDevice struct {
	DeviceName    string
	DeviceAddress string
	Connected     bool
	UUIDs         []uuid.UUID
}

func (d FakeDevice) Name() string    { return d.DeviceName }
func (d FakeDevice) Address() string { return d.DeviceAddress }

// FakeProvider is a device.Provider serving a fixed bonded set.
// It counts calls so tests can check how often the platform was queried.
type FakeProvider struct {
	adapter     *FakeAdapter
	absent      bool
	lookupErr   error
	lookupPanic any

	LookupCalls atomic.Int32
}

// DefaultAdapter implements device.Provider
func (p *FakeProvider) DefaultAdapter(ctx context.Context) (device.Adapter, bool, error) {
	p.LookupCalls.Add(1)
	if p.lookupPanic != nil {
		panic(p.lookupPanic)
	}
	if p.lookupErr != nil {
		return nil, false, p.lookupErr
	}
	if p.absent {
		return nil, false, nil
	}
	return p.adapter, true, nil
}

// Adapter returns the fake adapter, nil when built without one
func (p *FakeProvider) Adapter() *FakeAdapter {
	if p.absent {
		return nil
	}
	return p.adapter
}

// FakeAdapter is a device.Adapter serving a fixed bonded set
type FakeAdapter struct {
	id         string
	address    string
	devices    []FakeDevice
	queryErr   error
	queryPanic any

	QueryCalls atomic.Int32
}

func (a *FakeAdapter) ID() string      { return a.id }
func (a *FakeAdapter) Address() string { return a.address }

// BondedDevices implements device.Adapter
func (a *FakeAdapter) BondedDevices(ctx context.Context) ([]device.BondedDevice, error) {
	if err := a.query(ctx); err != nil {
		return nil, err
	}
	out := make([]device.BondedDevice, 0, len(a.devices))
	for _, d := range a.devices {
		out = append(out, d)
	}
	return out, nil
}

// BondedDetails implements device.Adapter
func (a *FakeAdapter) BondedDetails(ctx context.Context) ([]device.Details, error) {
	if err := a.query(ctx); err != nil {
		return nil, err
	}
	out := make([]device.Details, 0, len(a.devices))
	for _, d := range a.devices {
		out = append(out, device.Details{
			Record:    device.NewRecord(d),
			Alias:     d.DeviceName,
			Connected: d.Connected,
			UUIDs:     d.UUIDs,
		})
	}
	return out, nil
}

func (a *FakeAdapter) query(ctx context.Context) error {
	a.QueryCalls.Add(1)
	if a.queryPanic != nil {
		panic(a.queryPanic)
	}
	if a.queryErr != nil {
		return a.queryErr
	}
	return ctx.Err()
}

// BondedSetBuilder builds FakeProvider instances
type BondedSetBuilder struct {
	provider *FakeProvider
}

// NewBondedSetBuilder creates a builder with a present adapter and no bonded devices
func NewBondedSetBuilder() *BondedSetBuilder {
	return &BondedSetBuilder{
		provider: &FakeProvider{
			adapter: &FakeAdapter{
				id:      DefaultAdapterID,
				address: DefaultAdapterAddress,
				devices: []FakeDevice{},
			},
		},
	}
}

// WithAdapter sets the adapter identity
func (b *BondedSetBuilder) WithAdapter(id, address string) *BondedSetBuilder {
	b.provider.adapter.id = id
	b.provider.adapter.address = address
	return b
}

// WithoutAdapter makes the provider report no adapter
func (b *BondedSetBuilder) WithoutAdapter() *BondedSetBuilder {
	b.provider.absent = true
	return b
}

// WithDevice appends a bonded device; an empty name models a device without display name
func (b *BondedSetBuilder) WithDevice(name, address string) *BondedSetBuilder {
	b.provider.adapter.devices = append(b.provider.adapter.devices, FakeDevice{DeviceName: name, DeviceAddress: address})
	return b
}

// WithFakeDevices appends fully specified devices
func (b *BondedSetBuilder) WithFakeDevices(devs ...FakeDevice) *BondedSetBuilder {
	b.provider.adapter.devices = append(b.provider.adapter.devices, devs...)
	return b
}

type jsonDevice struct {
	Name      *string     `json:"name"`
	Address   string      `json:"address"`
	Connected bool        `json:"connected"`
	UUIDs     []uuid.UUID `json:"uuids"`
}

// WithDevicesFromJSON appends devices from a JSON array such as
// [{"name": "Printer-01", "address": "00:11:22:33:44:55"}, {"name": null, "address": "..."}]
func (b *BondedSetBuilder) WithDevicesFromJSON(jsonStrFmt string, args ...interface{}) *BondedSetBuilder {
	var devs []jsonDevice
	if err := json.Unmarshal([]byte(fmt.Sprintf(jsonStrFmt, args...)), &devs); err != nil {
		panic(fmt.Sprintf("invalid bonded device JSON: %v", err))
	}
	for _, d := range devs {
		fd := FakeDevice{DeviceAddress: d.Address, Connected: d.Connected, UUIDs: d.UUIDs}
		if d.Name != nil {
			fd.DeviceName = *d.Name
		}
		b.provider.adapter.devices = append(b.provider.adapter.devices, fd)
	}
	return b
}

// WithLookupError makes DefaultAdapter fail with err
func (b *BondedSetBuilder) WithLookupError(err error) *BondedSetBuilder {
	b.provider.lookupErr = err
	return b
}

// WithLookupPanic makes DefaultAdapter panic with v
func (b *BondedSetBuilder) WithLookupPanic(v any) *BondedSetBuilder {
	b.provider.lookupPanic = v
	return b
}

// WithQueryError makes the bonded-set read fail with err
func (b *BondedSetBuilder) WithQueryError(err error) *BondedSetBuilder {
	b.provider.adapter.queryErr = err
	return b
}

// WithQueryPanic makes the bonded-set read panic with v
func (b *BondedSetBuilder) WithQueryPanic(v any) *BondedSetBuilder {
	b.provider.adapter.queryPanic = v
	return b
}

// Build returns the configured provider
func (b *BondedSetBuilder) Build() *FakeProvider {
	return b.provider
}
