// Package bridge exposes bonded-device queries to a host application
// runtime through a promise-style calling convention: every method receives
// a Promise and settles it exactly once with Resolve or Reject.
package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/enumerator"
	"github.com/srg/bonded/internal/device"
)

const (
	// ModuleName is the name the bonded-devices module registers under
	ModuleName = "BondedDevicesModule"

	// MethodGetBondedDevices lists the bonded devices of the default adapter
	MethodGetBondedDevices = "getBondedDevices"
)

// Rejection codes and fixed messages delivered to the host
const (
	CodeNoBluetooth    = string(device.KindUnavailable)
	CodeError          = string(device.KindQueryFailed)
	MessageNoBluetooth = "Bluetooth no disponible"
)

// Promise is the host's completion primitive
type Promise interface {
	Resolve(value any)
	Reject(code, message string)
}

// Rejection is a settled failure as seen by the host
type Rejection struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// Method is a bridge-callable operation
type Method func(ctx context.Context, promise Promise)

// Module groups methods under a name, as registered with the host runtime
type Module interface {
	Name() string
	Methods() map[string]Method
}

// BondedDevicesModule serves getBondedDevices from an Enumerator
type BondedDevicesModule struct {
	enumerator *enumerator.Enumerator
	logger     *logrus.Logger
}

// NewBondedDevicesModule creates the module over e
func NewBondedDevicesModule(e *enumerator.Enumerator, logger *logrus.Logger) (*BondedDevicesModule, error) {
	if e == nil {
		return nil, errors.New("enumerator is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &BondedDevicesModule{
		enumerator: e,
		logger:     logger,
	}, nil
}

// Name implements Module
func (m *BondedDevicesModule) Name() string {
	return ModuleName
}

// Methods implements Module
func (m *BondedDevicesModule) Methods() map[string]Method {
	return map[string]Method{
		MethodGetBondedDevices: m.GetBondedDevices,
	}
}

// GetBondedDevices resolves promise with []device.Record, or rejects it with
// NO_BT when there is no adapter and ERROR for any other failure.
// It runs on the caller's goroutine; Registry.Invoke moves it off the host's.
func (m *BondedDevicesModule) GetBondedDevices(ctx context.Context, promise Promise) {
	records, err := m.enumerator.BondedDevices(ctx)
	if err != nil {
		code, message := RejectionFor(err)
		m.logger.WithFields(logrus.Fields{
			"code":    code,
			"message": message,
		}).Debug("getBondedDevices rejected")
		promise.Reject(code, message)
		return
	}

	m.logger.WithField("count", len(records)).Debug("getBondedDevices resolved")
	promise.Resolve(records)
}

// RejectionFor maps a query error to the host rejection code and message
func RejectionFor(err error) (code, message string) {
	if device.KindOf(err) == device.KindUnavailable {
		return CodeNoBluetooth, MessageNoBluetooth
	}
	return CodeError, err.Error()
}
