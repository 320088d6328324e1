package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"infotainment-agent/internal/models"
	"infotainment-agent/pkg/identity"

	"github.com/rs/zerolog"
)

// Publisher abstracts the MQTT client for telemetry publishing.
type Publisher interface {
	PublishBlocking(topic string, qos byte, retained bool, payload []byte) error
}

// SnapshotProvider supplies the state snapshots the telemetry service
// publishes. Implemented by the drive service.
type SnapshotProvider interface {
	Snapshot() models.StateSnapshot
}

// TelemetryService periodically publishes the vehicle state to an MQTT topic.
type TelemetryService struct {
	// Configuration fields
	topic    string
	interval time.Duration
	qos      int

	// Dependencies
	vehicleInfo identity.VehicleInfoInterface
	publisher   Publisher
	provider    SnapshotProvider
	logger      zerolog.Logger

	// Internal state management
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewTelemetryService creates a new TelemetryService instance with the
// provided configuration.
func NewTelemetryService(topic string, interval time.Duration, qos int, vehicleInfo identity.VehicleInfoInterface,
	publisher Publisher, provider SnapshotProvider, logger zerolog.Logger) *TelemetryService {
	return &TelemetryService{
		topic:       topic,
		interval:    interval,
		qos:         qos,
		vehicleInfo: vehicleInfo,
		publisher:   publisher,
		provider:    provider,
		logger:      logger,
	}
}

// Start initiates the TelemetryService, periodically publishing the vehicle
// state to the MQTT broker.
func (t *TelemetryService) Start() error {
	if t.running {
		t.logger.Warn().Msg("TelemetryService is already running")
		return errors.New("telemetry service is already running")
	}

	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.running = true

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := t.publishSnapshot(); err != nil {
					t.logger.Error().Err(err).Msg("Failed to publish telemetry")
				}
			case <-t.ctx.Done():
				t.logger.Info().Msg("TelemetryService is stopping")
				return
			}
		}
	}()

	t.logger.Info().
		Str("topic", t.topic).
		Dur("interval", t.interval).
		Int("qos", t.qos).
		Msg("TelemetryService started")
	return nil
}

// Stop gracefully stops the TelemetryService.
func (t *TelemetryService) Stop() error {
	if !t.running {
		t.logger.Warn().Msg("TelemetryService is not running")
		return errors.New("telemetry service is not running")
	}

	t.cancel()
	t.wg.Wait()

	t.running = false
	t.logger.Info().Msg("TelemetryService stopped")
	return nil
}

// publishSnapshot assembles the telemetry message and publishes it.
func (t *TelemetryService) publishSnapshot() error {
	message := models.Telemetry{
		VehicleID: t.vehicleInfo.GetVehicleID(),
		Timestamp: time.Now(),
		State:     t.provider.Snapshot(),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		t.logger.Error().Err(err).Msg("Failed to serialize telemetry message")
		return err
	}

	if err := t.publisher.PublishBlocking(t.topic, byte(t.qos), false, payload); err != nil {
		t.logger.Error().
			Err(err).
			Str("topic", t.topic).
			Msg("Failed to publish telemetry message to MQTT")
		return err
	}

	t.logger.Debug().
		Str("topic", t.topic).
		Str("status", message.State.NavigationStatus).
		Msg("Telemetry published")
	return nil
}
