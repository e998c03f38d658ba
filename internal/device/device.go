package device

import (
	"context"

	"github.com/google/uuid"
)

// Provider gives access to the platform's default Bluetooth adapter.
// ok is false when the platform has no adapter at all (hardware or driver
// absent); err is reserved for failures while looking the adapter up.
type Provider interface {
	DefaultAdapter(ctx context.Context) (adapter Adapter, ok bool, err error)
}

// Adapter is a read-only handle on a local Bluetooth controller
type Adapter interface {
	ID() string
	Address() string

	// BondedDevices returns the adapter's remembered (bonded) peers in the
	// platform's iteration order.
	BondedDevices(ctx context.Context) ([]BondedDevice, error)

	// BondedDetails returns the same set as BondedDevices with the extra
	// attributes the platform reports for each peer.
	BondedDetails(ctx context.Context) ([]Details, error)
}

// BondedDevice is a platform device handle as seen in the bonded set.
// Name may be empty when the platform has no display name for the peer.
type BondedDevice interface {
	Name() string
	Address() string
}

// Record is the projection of a bonded device delivered to callers
type Record struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NewRecord projects a platform device handle to a Record
func NewRecord(dev BondedDevice) Record {
	return Record{
		Name:    dev.Name(),
		Address: dev.Address(),
	}
}

// Details extends a Record with attributes used by long listings.
// Platforms fill in what they know; unknown attributes stay at zero value.
type Details struct {
	Record
	Alias     string      `json:"alias,omitempty"`
	Connected bool        `json:"connected"`
	Trusted   bool        `json:"trusted"`
	UUIDs     []uuid.UUID `json:"uuids,omitempty"`
}
