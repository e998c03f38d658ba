// Package mocks contains testify mocks of the device interfaces
package mocks

import (
	"context"

	"github.com/srg/bonded/internal/device"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a testify mock of device.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) DefaultAdapter(ctx context.Context) (device.Adapter, bool, error) {
	args := m.Called(ctx)
	var a device.Adapter
	if v := args.Get(0); v != nil {
		a = v.(device.Adapter)
	}
	return a, args.Bool(1), args.Error(2)
}

// MockAdapter is a testify mock of device.Adapter
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) ID() string {
	return m.Called().String(0)
}

func (m *MockAdapter) Address() string {
	return m.Called().String(0)
}

func (m *MockAdapter) BondedDevices(ctx context.Context) ([]device.BondedDevice, error) {
	args := m.Called(ctx)
	var devs []device.BondedDevice
	if v := args.Get(0); v != nil {
		devs = v.([]device.BondedDevice)
	}
	return devs, args.Error(1)
}

func (m *MockAdapter) BondedDetails(ctx context.Context) ([]device.Details, error) {
	args := m.Called(ctx)
	var details []device.Details
	if v := args.Get(0); v != nil {
		details = v.([]device.Details)
	}
	return details, args.Error(1)
}
