package vehicle

import (
	"context"
	"fmt"
	"strings"

	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
)

// tankCapacityL is the assumed fuel tank capacity used for range estimates.
const tankCapacityL = 50.0

// Thresholds holds the alerting limits for monitored vehicle parameters.
type Thresholds struct {
	MaxEngineTempC   float64 `yaml:"max_engine_temp_c"`
	LowFuelPercent   float64 `yaml:"low_fuel_percent"`
	CriticalFuelPct  float64 `yaml:"critical_fuel_percent"`
	SpeedLimitKmh    float64 `yaml:"speed_limit_kmh"`
	MinBrakeWearPct  float64 `yaml:"min_brake_wear_percent"`
	CriticalBrakePct float64 `yaml:"critical_brake_wear_percent"`
}

// DefaultThresholds returns the factory alerting limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxEngineTempC:   105.0,
		LowFuelPercent:   15.0,
		CriticalFuelPct:  5.0,
		SpeedLimitKmh:    120.0,
		MinBrakeWearPct:  20.0,
		CriticalBrakePct: 10.0,
	}
}

// Monitor tracks vehicle health parameters and raises alerts through the
// shared notification sink whenever a parameter leaves its safe range.
// Setters clamp out-of-range input silently and then run the matching check.
type Monitor struct {
	engineTempC     float64
	fuelPercent     float64
	consumptionRate float64 // L/100km
	speedKmh        float64
	brakeWearPct    float64 // 100 = new, 0 = worn out

	thresholds Thresholds
	sink       notification.Notifier
	logger     zerolog.Logger
}

// NewMonitor creates a monitor with nominal starting values.
func NewMonitor(thresholds Thresholds, sink notification.Notifier, logger zerolog.Logger) *Monitor {
	return &Monitor{
		engineTempC:     85.0,
		fuelPercent:     75.0,
		consumptionRate: 8.5,
		brakeWearPct:    85.0,
		thresholds:      thresholds,
		sink:            sink,
		logger:          logger,
	}
}

// SetEngineTemp records the engine temperature, clamped to [-50, 200] °C.
func (m *Monitor) SetEngineTemp(tempC float64) {
	if tempC < -50.0 {
		tempC = -50.0
	}
	if tempC > 200.0 {
		tempC = 200.0
	}
	m.engineTempC = tempC
	m.checkEngineTemp()
}

// SetFuelLevel records the fuel level, clamped to [0, 100] percent.
func (m *Monitor) SetFuelLevel(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m.fuelPercent = percent
	m.checkFuelLevel()
}

// SetConsumptionRate records fuel consumption in L/100km, clamped to ≥ 0.
func (m *Monitor) SetConsumptionRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	m.consumptionRate = rate
}

// SetSpeed records the vehicle speed in km/h, clamped to ≥ 0.
func (m *Monitor) SetSpeed(kmh float64) {
	if kmh < 0 {
		kmh = 0
	}
	m.speedKmh = kmh
	m.checkSpeed()
}

// SetBrakeWear records brake wear, clamped to [0, 100] percent remaining.
func (m *Monitor) SetBrakeWear(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m.brakeWearPct = percent
	m.checkBrakes()
}

// EngineTemp returns the engine temperature in °C.
func (m *Monitor) EngineTemp() float64 { return m.engineTempC }

// FuelLevel returns the fuel level in percent.
func (m *Monitor) FuelLevel() float64 { return m.fuelPercent }

// ConsumptionRate returns the fuel consumption in L/100km.
func (m *Monitor) ConsumptionRate() float64 { return m.consumptionRate }

// Speed returns the vehicle speed in km/h.
func (m *Monitor) Speed() float64 { return m.speedKmh }

// BrakeWear returns remaining brake life in percent.
func (m *Monitor) BrakeWear() float64 { return m.brakeWearPct }

func (m *Monitor) checkEngineTemp() {
	switch {
	case m.engineTempC > m.thresholds.MaxEngineTempC:
		m.sink.Notify(fmt.Sprintf("Engine overheating! Temperature: %.1f°C (Max: %.1f°C)",
			m.engineTempC, m.thresholds.MaxEngineTempC), notification.Critical)
	case m.engineTempC > m.thresholds.MaxEngineTempC-10.0:
		m.sink.Notify(fmt.Sprintf("Engine temperature elevated: %.1f°C", m.engineTempC),
			notification.Warning)
	}
}

func (m *Monitor) checkFuelLevel() {
	switch {
	case m.fuelPercent <= m.thresholds.CriticalFuelPct:
		m.sink.Notify(fmt.Sprintf("Fuel level extremely low! %.1f%% remaining", m.fuelPercent),
			notification.Critical)
	case m.fuelPercent <= m.thresholds.LowFuelPercent:
		m.sink.Notify(fmt.Sprintf("Low fuel warning: %.1f%% remaining", m.fuelPercent),
			notification.Warning)
	}
}

func (m *Monitor) checkSpeed() {
	if m.speedKmh > m.thresholds.SpeedLimitKmh {
		m.sink.Notify(fmt.Sprintf("Speed limit exceeded! Current: %.1f km/h (Limit: %.1f km/h)",
			m.speedKmh, m.thresholds.SpeedLimitKmh), notification.Warning)
	}
}

func (m *Monitor) checkBrakes() {
	if m.brakeWearPct > m.thresholds.MinBrakeWearPct {
		return
	}
	msg := fmt.Sprintf("Brake system requires attention! Wear level: %.1f%%", m.brakeWearPct)
	if m.brakeWearPct <= m.thresholds.CriticalBrakePct {
		m.sink.Notify(msg, notification.Critical)
	} else {
		m.sink.Notify(msg, notification.Warning)
	}
}

// CriticalChecker exposes the hub query the system check uses to decide
// whether everything is healthy.
type CriticalChecker interface {
	HasCritical() bool
}

// HealthChecker runs the head-unit diagnostics sweep. Implemented by the
// diagnostics registry.
type HealthChecker interface {
	RunChecks(ctx context.Context)
}

// SystemCheck re-runs every parameter check, sweeps the head-unit diagnostics
// when a health checker is wired, and reports an all-clear when no critical
// alerts are present in the sink. health may be nil.
func (m *Monitor) SystemCheck(critical CriticalChecker, health HealthChecker) {
	m.logger.Info().Msg("Performing comprehensive system check")

	m.checkEngineTemp()
	m.checkFuelLevel()
	m.checkSpeed()
	m.checkBrakes()

	if health != nil {
		health.RunChecks(context.Background())
	}

	if !critical.HasCritical() {
		m.sink.Notify("System check completed - All systems normal", notification.Info)
	}
}

// EstimatedRangeKm estimates remaining driving range from the current fuel
// level and consumption rate.
func (m *Monitor) EstimatedRangeKm() float64 {
	if m.consumptionRate <= 0 || m.fuelPercent <= 0 {
		return 0
	}
	fuelL := m.fuelPercent / 100.0 * tankCapacityL
	return fuelL / m.consumptionRate * 100.0
}

// StatusReport renders a human-readable dashboard of the vehicle parameters.
func (m *Monitor) StatusReport() string {
	var b strings.Builder

	b.WriteString("=== VEHICLE STATUS ===\n")

	tempState := "NORMAL"
	if m.engineTempC > m.thresholds.MaxEngineTempC {
		tempState = "OVERHEATING"
	} else if m.engineTempC > m.thresholds.MaxEngineTempC-10.0 {
		tempState = "HIGH"
	}
	fmt.Fprintf(&b, "Engine Temperature: %.1f°C [%s]\n", m.engineTempC, tempState)

	fuelState := "OK"
	if m.fuelPercent <= m.thresholds.CriticalFuelPct {
		fuelState = "CRITICAL"
	} else if m.fuelPercent <= m.thresholds.LowFuelPercent {
		fuelState = "LOW"
	}
	fmt.Fprintf(&b, "Fuel Level: %.1f%% [%s] (Range: ~%.0f km)\n",
		m.fuelPercent, fuelState, m.EstimatedRangeKm())

	speedState := "OK"
	if m.speedKmh > m.thresholds.SpeedLimitKmh {
		speedState = "OVER LIMIT"
	}
	fmt.Fprintf(&b, "Current Speed: %.1f km/h [%s]\n", m.speedKmh, speedState)

	brakeState := "GOOD"
	if m.brakeWearPct <= m.thresholds.CriticalBrakePct {
		brakeState = "CRITICAL"
	} else if m.brakeWearPct <= m.thresholds.MinBrakeWearPct {
		brakeState = "NEEDS SERVICE"
	}
	fmt.Fprintf(&b, "Brake Wear: %.1f%% [%s]\n", m.brakeWearPct, brakeState)

	fmt.Fprintf(&b, "Fuel Consumption: %.1f L/100km\n", m.consumptionRate)

	return b.String()
}
