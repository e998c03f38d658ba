// Package device defines the platform-neutral view of a local Bluetooth
// adapter and its bonded peers.
//
// The package provides:
//   - Provider, Adapter and BondedDevice interfaces implemented by platform backends
//   - Record, the {name, address} projection returned to callers
//   - QueryError, the two-kind error taxonomy (NO_BT / ERROR)
//
// Platform backends live in sub-packages (bluez for Linux, goble for macOS)
// and are selected by the devicefactory package.
package device
