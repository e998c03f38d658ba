// Package enumerator lists the Bluetooth devices bonded to the platform's
// default adapter.
package enumerator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
)

// Enumerator answers bonded-device queries against an injected provider.
// It holds no mutable state and is safe for concurrent use.
type Enumerator struct {
	provider device.Provider
	logger   *logrus.Logger
}

// NewEnumerator creates an Enumerator over provider
func NewEnumerator(provider device.Provider, logger *logrus.Logger) (*Enumerator, error) {
	if provider == nil {
		return nil, errors.New("bluetooth provider is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Enumerator{
		provider: provider,
		logger:   logger,
	}, nil
}

// BondedDevices returns one Record per device in the default adapter's
// bonded set, in the order the platform reports them.
//
// Errors are always *device.QueryError: KindUnavailable when there is no
// adapter, KindQueryFailed (carrying the cause's message) for anything else.
func (e *Enumerator) BondedDevices(ctx context.Context) (records []device.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, e.panicked(r)
		}
	}()

	adapter, err := e.defaultAdapter(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	devs, err := adapter.BondedDevices(ctx)
	if err != nil {
		return nil, e.queryFailed(adapter, err)
	}

	records = make([]device.Record, 0, len(devs))
	for _, d := range devs {
		records = append(records, device.NewRecord(d))
	}

	e.logger.WithFields(logrus.Fields{
		"adapter":  adapter.ID(),
		"count":    len(records),
		"duration": time.Since(start),
	}).Debug("Bonded devices listed")

	return records, nil
}

// BondedDetails is BondedDevices with the platform's extra per-device
// attributes. Error semantics are identical.
func (e *Enumerator) BondedDetails(ctx context.Context) (details []device.Details, err error) {
	defer func() {
		if r := recover(); r != nil {
			details, err = nil, e.panicked(r)
		}
	}()

	adapter, err := e.defaultAdapter(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	details, err = adapter.BondedDetails(ctx)
	if err != nil {
		return nil, e.queryFailed(adapter, err)
	}
	if details == nil {
		details = []device.Details{}
	}

	e.logger.WithFields(logrus.Fields{
		"adapter":  adapter.ID(),
		"count":    len(details),
		"duration": time.Since(start),
	}).Debug("Bonded device details listed")

	return details, nil
}

func (e *Enumerator) defaultAdapter(ctx context.Context) (device.Adapter, error) {
	adapter, ok, err := e.provider.DefaultAdapter(ctx)
	if err != nil {
		e.logger.WithError(err).Error("Failed to get Bluetooth adapter")
		return nil, device.NewQueryFailed(err)
	}
	if !ok || adapter == nil {
		e.logger.Debug("No Bluetooth adapter available")
		return nil, device.NewUnavailable(nil)
	}
	return adapter, nil
}

func (e *Enumerator) queryFailed(adapter device.Adapter, err error) error {
	e.logger.WithFields(logrus.Fields{
		"adapter": adapter.ID(),
		"error":   err,
	}).Error("Failed to read bonded devices")
	return device.NewQueryFailed(err)
}

// panicked turns a recovered provider panic into a KindQueryFailed error
func (e *Enumerator) panicked(r any) error {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	e.logger.WithField("panic", r).Error("Bluetooth provider panicked")
	return device.NewQueryFailed(cause)
}
