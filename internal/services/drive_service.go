package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"infotainment-agent/internal/models"
	"infotainment-agent/internal/navigation"
	"infotainment-agent/internal/simulator"
	"infotainment-agent/internal/vehicle"

	"github.com/rs/zerolog"
)

// DriveService is the single logical owner of the navigation core. It pulls
// sensor readings from the configured source at a fixed cadence and feeds
// them into the navigator and vehicle monitor. All other goroutines observe
// the state only through Snapshot.
type DriveService struct {
	// Configuration fields
	interval time.Duration

	// Dependencies
	navigator  *navigation.Navigator
	monitor    *vehicle.Monitor
	source     simulator.Source
	vehicleSim *simulator.VehicleSim
	logger     zerolog.Logger

	// Internal state management
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewDriveService creates a new DriveService instance. vehicleSim may be nil
// when vehicle parameters are driven externally.
func NewDriveService(interval time.Duration, navigator *navigation.Navigator, monitor *vehicle.Monitor,
	source simulator.Source, vehicleSim *simulator.VehicleSim, logger zerolog.Logger) *DriveService {
	return &DriveService{
		interval:   interval,
		navigator:  navigator,
		monitor:    monitor,
		source:     source,
		vehicleSim: vehicleSim,
		logger:     logger,
	}
}

// Start begins pulling readings from the source.
func (d *DriveService) Start() error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		d.logger.Warn().Msg("DriveService is already running")
		return errors.New("drive service is already running")
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.running = true
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.closeSource()

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if done := d.tick(); done {
					d.mu.Lock()
					d.running = false
					d.mu.Unlock()
					return
				}
			case <-d.ctx.Done():
				d.logger.Info().Msg("DriveService is stopping")
				return
			}
		}
	}()

	d.logger.Info().
		Dur("interval", d.interval).
		Msg("DriveService started")
	return nil
}

// Stop halts the update loop. Stopping a loop that already finished on its
// own (exhausted source) reports "not running".
func (d *DriveService) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		d.logger.Warn().Msg("DriveService is not running")
		return errors.New("drive service is not running")
	}
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()

	d.mu.Lock()
	d.running = false
	d.mu.Unlock()

	d.logger.Info().Msg("DriveService stopped")
	return nil
}

// closeSource releases the source if it holds resources. Runs when the
// update loop exits, whether cancelled or exhausted.
func (d *DriveService) closeSource() {
	if closer, ok := d.source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			d.logger.Error().Err(err).Msg("Failed to close signal source")
		}
	}
}

// tick applies one reading to the core. It reports true when the source is
// exhausted and the loop should end.
func (d *DriveService) tick() bool {
	reading, err := d.source.Next()
	if err != nil {
		if errors.Is(err, simulator.ErrExhausted) {
			d.logger.Info().Msg("Signal source exhausted, drive finished")
			return true
		}
		d.logger.Error().Err(err).Msg("Failed to read from signal source")
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.navigator.UpdateLocation(reading.Coordinate)
	d.navigator.UpdateSpeed(reading.SpeedKmh)
	d.navigator.UpdateHeading(reading.HeadingDeg)
	d.navigator.UpdateGPSSignal(reading.Satellites, reading.AccuracyM)

	if d.vehicleSim != nil {
		vr := d.vehicleSim.Next()
		d.monitor.SetEngineTemp(vr.EngineTempC)
		d.monitor.SetFuelLevel(vr.FuelPercent)
		d.monitor.SetSpeed(vr.SpeedKmh)
		d.monitor.SetBrakeWear(vr.BrakeWearPct)
	}

	d.logger.Debug().
		Str("status", d.navigator.Status().String()).
		Float64("speed_kmh", d.navigator.SpeedKmh()).
		Int("satellites", d.navigator.Signal().Satellites).
		Msg("Sensor reading applied")
	return false
}

// Snapshot assembles a consistent view of the vehicle and navigation state
// for publishing. Safe to call from other goroutines.
func (d *DriveService) Snapshot() models.StateSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	signal := d.navigator.Signal()
	return models.StateSnapshot{
		Location:         d.navigator.CurrentLocation(),
		NavigationStatus: d.navigator.Status().String(),
		SpeedKmh:         d.navigator.SpeedKmh(),
		HeadingDeg:       d.navigator.HeadingDeg(),
		Satellites:       signal.Satellites,
		AccuracyM:        signal.AccuracyM,
		FixUsable:        signal.Usable,
		EngineTempC:      d.monitor.EngineTemp(),
		FuelPercent:      d.monitor.FuelLevel(),
		BrakeWearPct:     d.monitor.BrakeWear(),
		RangeKm:          d.monitor.EstimatedRangeKm(),
	}
}
