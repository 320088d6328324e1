package services

import (
	"testing"
	"time"

	"infotainment-agent/internal/navigation"
	"infotainment-agent/internal/services"
	"infotainment-agent/internal/simulator"
	"infotainment-agent/internal/vehicle"
	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newDriveFixture(readings []simulator.Reading, interval time.Duration) (*services.DriveService, *notification.Hub) {
	logger := zerolog.Nop()
	hub := notification.NewHub(logger)
	navigator := navigation.NewNavigator(hub, nil, logger)
	monitor := vehicle.NewMonitor(vehicle.DefaultThresholds(), hub, logger)
	source := simulator.NewScriptedSource(readings)

	return services.NewDriveService(interval, navigator, monitor, source, nil, logger), hub
}

// TestDriveService_Start_Success tests the successful start of the DriveService.
func TestDriveService_Start_Success(t *testing.T) {
	d, _ := newDriveFixture(nil, 1*time.Second)

	// Execute
	err := d.Start()

	// Assert
	assert.NoError(t, err)

	// Try to start again (should fail)
	err = d.Start()
	assert.Error(t, err)
	assert.Equal(t, "drive service is already running", err.Error())

	// Cleanup
	err = d.Stop()
	assert.NoError(t, err)
}

// TestDriveService_Stop_Success tests the successful stop of the DriveService.
func TestDriveService_Stop_Success(t *testing.T) {
	d, _ := newDriveFixture(nil, 1*time.Second)

	// Start the service
	err := d.Start()
	assert.NoError(t, err)

	// Execute
	err = d.Stop()

	// Assert
	assert.NoError(t, err)

	// Try to stop again (should fail)
	err = d.Stop()
	assert.Error(t, err)
	assert.Equal(t, "drive service is not running", err.Error())
}

// TestDriveService_AppliesReadings verifies that scripted readings flow into
// the navigation state and surface in snapshots.
func TestDriveService_AppliesReadings(t *testing.T) {
	readings := []simulator.Reading{
		{
			Coordinate: navigation.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
			SpeedKmh:   50.0,
			HeadingDeg: 90.0,
			Satellites: 8,
			AccuracyM:  3.0,
		},
		{
			Coordinate: navigation.Coordinate{Latitude: 37.7800, Longitude: -122.4100},
			SpeedKmh:   60.0,
			HeadingDeg: 45.0,
			Satellites: 9,
			AccuracyM:  2.5,
		},
	}

	d, _ := newDriveFixture(readings, 5*time.Millisecond)

	err := d.Start()
	assert.NoError(t, err)

	// The source is finite, so the loop drains it and stops on its own.
	time.Sleep(50 * time.Millisecond)

	snapshot := d.Snapshot()
	assert.InDelta(t, 37.7800, snapshot.Location.Latitude, 1e-9)
	assert.InDelta(t, -122.4100, snapshot.Location.Longitude, 1e-9)
	assert.Equal(t, 60.0, snapshot.SpeedKmh)
	assert.Equal(t, 45.0, snapshot.HeadingDeg)
	assert.Equal(t, 9, snapshot.Satellites)
	assert.True(t, snapshot.FixUsable)
	assert.Equal(t, "IDLE", snapshot.NavigationStatus)

	// The loop already ended on its own when the source drained.
	err = d.Stop()
	assert.Error(t, err)
	assert.Equal(t, "drive service is not running", err.Error())
}

// TestDriveService_SignalLossRaisesAlert verifies that a degraded fix in the
// reading stream reaches the notification hub.
func TestDriveService_SignalLossRaisesAlert(t *testing.T) {
	readings := []simulator.Reading{
		{
			Coordinate: navigation.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
			Satellites: 8,
			AccuracyM:  3.0,
		},
		{
			Coordinate: navigation.Coordinate{Latitude: 37.7750, Longitude: -122.4195},
			Satellites: 2,
			AccuracyM:  15.0,
		},
	}

	d, hub := newDriveFixture(readings, 5*time.Millisecond)

	err := d.Start()
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	snapshot := d.Snapshot()
	assert.False(t, snapshot.FixUsable)
	assert.True(t, hub.HasCritical())
}

// TestDriveService_RestartAfterExhaustion verifies that draining the source
// leaves the service startable again.
func TestDriveService_RestartAfterExhaustion(t *testing.T) {
	readings := []simulator.Reading{
		{
			Coordinate: navigation.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
			Satellites: 8,
			AccuracyM:  3.0,
		},
	}

	d, _ := newDriveFixture(readings, 5*time.Millisecond)

	err := d.Start()
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	// The loop finished on its own, so a fresh start must succeed.
	err = d.Start()
	assert.NoError(t, err)

	// The restarted loop drains the empty source and finishes again.
	time.Sleep(50 * time.Millisecond)
	err = d.Stop()
	assert.Error(t, err)
	assert.Equal(t, "drive service is not running", err.Error())
}
