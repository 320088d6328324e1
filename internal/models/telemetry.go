package models

import (
	"time"

	"infotainment-agent/internal/navigation"
)

// StateSnapshot is a point-in-time view of the vehicle and navigation state,
// assembled by the drive service for publishing and display.
type StateSnapshot struct {
	Location         navigation.Coordinate `json:"location"`
	NavigationStatus string                `json:"navigation_status"`
	SpeedKmh         float64               `json:"speed_kmh"`
	HeadingDeg       float64               `json:"heading_deg"`
	Satellites       int                   `json:"satellites"`
	AccuracyM        float64               `json:"accuracy_m"`
	FixUsable        bool                  `json:"fix_usable"`
	EngineTempC      float64               `json:"engine_temp_c"`
	FuelPercent      float64               `json:"fuel_percent"`
	BrakeWearPct     float64               `json:"brake_wear_pct"`
	RangeKm          float64               `json:"range_km"`
}

// Telemetry is the message published to the telemetry topic.
type Telemetry struct {
	VehicleID string        `json:"vehicle_id"`
	Timestamp time.Time     `json:"timestamp"`
	State     StateSnapshot `json:"state"`
}
