package mocks

import (
	"infotainment-agent/pkg/identity"

	"github.com/stretchr/testify/mock"
)

// MockVehicleInfo is a mock implementation of the VehicleInfoInterface
type MockVehicleInfo struct {
	mock.Mock
}

func (m *MockVehicleInfo) LoadVehicleInfo() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockVehicleInfo) SaveVehicleID(vehicleID string) error {
	args := m.Called(vehicleID)
	return args.Error(0)
}

func (m *MockVehicleInfo) GetVehicleID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockVehicleInfo) GetIdentity() *identity.Identity {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*identity.Identity)
}
