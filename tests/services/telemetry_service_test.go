package services

import (
	"testing"
	"time"

	"infotainment-agent/internal/models"
	"infotainment-agent/internal/services"
	"infotainment-agent/tests/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// stubProvider returns a fixed snapshot.
type stubProvider struct {
	snapshot models.StateSnapshot
}

func (s *stubProvider) Snapshot() models.StateSnapshot {
	return s.snapshot
}

// TestTelemetryService_Start_Success tests the successful start of the TelemetryService.
func TestTelemetryService_Start_Success(t *testing.T) {
	// Setup
	mockVehicleInfo := new(mocks.MockVehicleInfo)
	mockPublisher := new(mocks.MockPublisher)
	provider := &stubProvider{}
	logger := zerolog.Nop()

	mockVehicleInfo.On("GetVehicleID").Return("test-vehicle-id")
	mockPublisher.On("PublishBlocking", "test-topic", byte(1), false, mock.Anything).Return(nil)

	s := services.NewTelemetryService(
		"test-topic",
		1*time.Second,
		1,
		mockVehicleInfo,
		mockPublisher,
		provider,
		logger,
	)

	// Execute
	err := s.Start()

	// Assert
	assert.NoError(t, err)

	// Try to start again (should fail)
	err = s.Start()
	assert.Error(t, err)
	assert.Equal(t, "telemetry service is already running", err.Error())

	// Cleanup
	err = s.Stop()
	assert.NoError(t, err)
}

// TestTelemetryService_Stop_Success tests the successful stop of the TelemetryService.
func TestTelemetryService_Stop_Success(t *testing.T) {
	// Setup
	mockVehicleInfo := new(mocks.MockVehicleInfo)
	mockPublisher := new(mocks.MockPublisher)
	provider := &stubProvider{}
	logger := zerolog.Nop()

	s := services.NewTelemetryService(
		"test-topic",
		1*time.Second,
		1,
		mockVehicleInfo,
		mockPublisher,
		provider,
		logger,
	)

	// Start the service
	err := s.Start()
	assert.NoError(t, err)

	// Execute
	err = s.Stop()

	// Assert
	assert.NoError(t, err)

	// Try to stop again (should fail)
	err = s.Stop()
	assert.Error(t, err)
	assert.Equal(t, "telemetry service is not running", err.Error())
}

// TestTelemetryService_PublishesSnapshots verifies that snapshots reach the
// publisher with the configured topic and QoS.
func TestTelemetryService_PublishesSnapshots(t *testing.T) {
	// Setup
	mockVehicleInfo := new(mocks.MockVehicleInfo)
	mockPublisher := new(mocks.MockPublisher)
	provider := &stubProvider{snapshot: models.StateSnapshot{NavigationStatus: "NAVIGATING", SpeedKmh: 42.0}}
	logger := zerolog.Nop()

	mockVehicleInfo.On("GetVehicleID").Return("test-vehicle-id")
	mockPublisher.On("PublishBlocking", "vehicle/telemetry", byte(1), false, mock.Anything).Return(nil)

	s := services.NewTelemetryService(
		"vehicle/telemetry",
		10*time.Millisecond,
		1,
		mockVehicleInfo,
		mockPublisher,
		provider,
		logger,
	)

	// Execute
	err := s.Start()
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	err = s.Stop()
	assert.NoError(t, err)

	// Assert
	mockPublisher.AssertCalled(t, "PublishBlocking", "vehicle/telemetry", byte(1), false, mock.Anything)
	mockVehicleInfo.AssertCalled(t, "GetVehicleID")
}
