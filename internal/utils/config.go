package utils

import (
	"time"

	"infotainment-agent/internal/diagnostics"
	"infotainment-agent/internal/vehicle"
	"infotainment-agent/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	MQTT struct {
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate (optional)
	} `yaml:"mqtt"`

	Identity struct {
		VehicleFile string `yaml:"vehicle_file"` // Path to the vehicle identity file
	} `yaml:"identity"`

	Navigation struct {
		MapsAPIKey        string  `yaml:"maps_api_key"`    // Google maps API key for address lookup
		Source            string  `yaml:"source"`          // GPS source: random, nmea or serial
		NMEAFile          string  `yaml:"nmea_file"`       // Path to a recorded NMEA log (source: nmea)
		GPSDevicePort     string  `yaml:"gps_device_port"` // Serial port where the GPS sensor is mounted
		GPSDeviceBaudRate int     `yaml:"gps_baud_rate"`   // Baud rate for the GPS sensor
		RandomSeed        int64   `yaml:"random_seed"`     // Seed for the random source (0 uses current time)
		StartLatitude     float64 `yaml:"start_latitude"`  // Initial latitude for the random source
		StartLongitude    float64 `yaml:"start_longitude"` // Initial longitude for the random source
	} `yaml:"navigation"`

	Vehicle struct {
		Thresholds vehicle.Thresholds `yaml:"thresholds"` // Alert thresholds for vehicle checks
	} `yaml:"vehicle"`

	Media struct {
		PlaylistFile string `yaml:"playlist_file"` // Path to the playlist file
	} `yaml:"media"`

	Settings struct {
		SettingsFile string `yaml:"settings_file"` // Path where user settings are persisted
	} `yaml:"settings"`

	Diagnostics struct {
		Enabled  bool               `yaml:"enabled"`  // Enable/disable head-unit diagnostics
		Interval time.Duration      `yaml:"interval"` // Interval between health checks (in seconds)
		CPU      diagnostics.Limits `yaml:"cpu"`      // CPU usage limits
		Memory   diagnostics.Limits `yaml:"memory"`   // Memory usage limits
	} `yaml:"diagnostics"`

	Services struct {
		Drive struct {
			Enabled  bool          `yaml:"enabled"`  // Enable/disable the drive loop
			Interval time.Duration `yaml:"interval"` // Interval between GPS readings (in seconds)
		} `yaml:"drive"`

		Telemetry struct {
			Enabled  bool          `yaml:"enabled"`  // Enable/disable telemetry publishing
			Topic    string        `yaml:"topic"`    // MQTT topic for telemetry messages
			Interval time.Duration `yaml:"interval"` // Interval between telemetry messages (in seconds)
			QOS      int           `yaml:"qos"`      // MQTT QoS level for telemetry messages
		} `yaml:"telemetry"`
	} `yaml:"services"`
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
