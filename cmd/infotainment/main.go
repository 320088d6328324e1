package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"infotainment-agent/internal/diagnostics"
	"infotainment-agent/internal/media"
	"infotainment-agent/internal/navigation"
	"infotainment-agent/internal/services"
	"infotainment-agent/internal/settings"
	"infotainment-agent/internal/simulator"
	"infotainment-agent/internal/utils"
	"infotainment-agent/internal/vehicle"
	"infotainment-agent/pkg/file"
	"infotainment-agent/pkg/geocode"
	"infotainment-agent/pkg/identity"
	"infotainment-agent/pkg/mqtt"
	"infotainment-agent/pkg/notification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	// Set up structured logging with console output
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig("configs/config.yaml", fileClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Load the vehicle identity
	vehicleInfo := identity.NewVehicleInfo(config.Identity.VehicleFile, fileClient)
	if err := vehicleInfo.LoadVehicleInfo(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load vehicle information")
	}

	// Generate a unique MQTT Client ID by appending a UUID
	config.MQTT.ClientID = config.MQTT.ClientID + "-" + uuid.New().String()
	log.Info().Str("client_id", config.MQTT.ClientID).Msg("Using MQTT Client ID")

	// Initialize the shared MQTT connection
	mqttClient := mqtt.NewMqttService(fileClient)
	if err := mqttClient.Initialize(config.MQTT.Broker, config.MQTT.ClientID, config.MQTT.CACertificate); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize MQTT connection")
	}

	// The notification hub is shared by every subsystem that raises alerts
	hub := notification.NewHub(log)

	// Address lookup is optional and only wired when an API key is configured
	var resolver navigation.DestinationResolver
	if config.Navigation.MapsAPIKey != "" {
		googleResolver, err := geocode.NewGoogleResolver(config.Navigation.MapsAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create geocoding client")
		}
		resolver = googleResolver
	}

	navigator := navigation.NewNavigator(hub, resolver, log)
	monitor := vehicle.NewMonitor(config.Vehicle.Thresholds, hub, log)

	settingsManager := settings.NewManager(config.Settings.SettingsFile, fileClient, hub, log)
	if err := settingsManager.Load(); err != nil {
		log.Warn().Err(err).Msg("Failed to load user settings, using defaults")
	}

	player := media.NewPlayer(fileClient, hub, log)
	if config.Media.PlaylistFile != "" {
		if err := player.LoadPlaylist(config.Media.PlaylistFile); err != nil {
			log.Warn().Err(err).Msg("Failed to load playlist")
		} else {
			player.Play()
		}
	}

	source, err := buildSource(config, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create GPS source")
	}

	// Create a new service registry to manage services
	registry := services.NewRegistry(log)

	var driveService *services.DriveService
	if config.Services.Drive.Enabled {
		vehicleSim := simulator.NewVehicleSim(config.Navigation.RandomSeed)
		driveService = services.NewDriveService(
			time.Duration(config.Services.Drive.Interval)*time.Second,
			navigator, monitor, source, vehicleSim, log)
		registry.Register("drive", driveService)
	}

	if config.Services.Telemetry.Enabled && driveService != nil {
		telemetryService := services.NewTelemetryService(config.Services.Telemetry.Topic,
			time.Duration(config.Services.Telemetry.Interval)*time.Second,
			config.Services.Telemetry.QOS, vehicleInfo, mqttClient, driveService, log)
		registry.Register("telemetry", telemetryService)
	}

	var health vehicle.HealthChecker
	if config.Diagnostics.Enabled {
		diagRegistry := diagnostics.NewRegistry(hub, log)
		diagRegistry.Register(&diagnostics.CPUCollector{Logger: log}, config.Diagnostics.CPU)
		diagRegistry.Register(&diagnostics.MemoryCollector{Logger: log}, config.Diagnostics.Memory)
		registry.Register("diagnostics", services.NewDiagnosticsService(
			time.Duration(config.Diagnostics.Interval)*time.Second, diagRegistry, log))
		health = diagRegistry
	}

	// Start all registered services in the registry
	if err := registry.StartServices(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start services")
	}
	log.Info().Msg("All services started successfully")

	// Post-startup self test
	monitor.SystemCheck(hub, health)

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down gracefully...")
	if err := registry.StopServices(); err != nil {
		log.Error().Err(err).Msg("Failed to stop services cleanly")
	}
	if err := settingsManager.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to persist user settings")
	}
	mqttClient.Disconnect(250)
}

// buildSource selects the GPS reading source named in the configuration.
func buildSource(config *utils.Config, log zerolog.Logger) (simulator.Source, error) {
	start := navigation.Coordinate{
		Latitude:  config.Navigation.StartLatitude,
		Longitude: config.Navigation.StartLongitude,
	}

	switch config.Navigation.Source {
	case "serial":
		log.Info().Str("port", config.Navigation.GPSDevicePort).Msg("Using serial GPS source")
		return simulator.NewSerialSource(config.Navigation.GPSDevicePort, config.Navigation.GPSDeviceBaudRate), nil
	case "nmea":
		log.Info().Str("file", config.Navigation.NMEAFile).Msg("Using recorded NMEA source")
		return simulator.NewNMEAFileSource(config.Navigation.NMEAFile)
	default:
		log.Info().Int64("seed", config.Navigation.RandomSeed).Msg("Using simulated GPS source")
		return simulator.NewRandomSource(config.Navigation.RandomSeed, start), nil
	}
}
