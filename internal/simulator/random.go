package simulator

import (
	"math/rand"
	"time"

	"infotainment-agent/internal/navigation"
)

// pickSeed resolves the configured seed. Zero means "not pinned" and falls
// back to the current time so default configurations do not replay the same
// walk on every run.
func pickSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// RandomSource produces a plausible drive by random-walking from a starting
// position. It is seeded explicitly so runs can be reproduced.
type RandomSource struct {
	rng     *rand.Rand
	current Reading
}

// NewRandomSource creates a random walk starting at the given position with
// a healthy fix. A zero seed is replaced with the current time.
func NewRandomSource(seed int64, start navigation.Coordinate) *RandomSource {
	return &RandomSource{
		rng: rand.New(rand.NewSource(pickSeed(seed))),
		current: Reading{
			Coordinate: start,
			SpeedKmh:   40,
			HeadingDeg: 0,
			Satellites: 8,
			AccuracyM:  3.0,
		},
	}
}

// Next perturbs the previous reading: small coordinate drift, mild speed and
// heading changes, satellite count between 4 and 12 and accuracy between 1
// and 8 meters.
func (r *RandomSource) Next() (Reading, error) {
	c := r.current.Coordinate
	c.Latitude += r.interval(-0.001, 0.001)
	c.Longitude += r.interval(-0.001, 0.001)
	r.current.Coordinate = c

	r.current.SpeedKmh += r.interval(-2.0, 5.0)
	if r.current.SpeedKmh < 0 {
		r.current.SpeedKmh = 0
	}

	r.current.HeadingDeg += r.interval(-10.0, 10.0)
	if r.current.HeadingDeg < 0 {
		r.current.HeadingDeg += 360
	}
	if r.current.HeadingDeg >= 360 {
		r.current.HeadingDeg -= 360
	}

	r.current.Satellites = 4 + r.rng.Intn(9)
	r.current.AccuracyM = r.interval(1.0, 8.0)

	return r.current, nil
}

func (r *RandomSource) interval(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// VehicleReading is one sample of the simulated vehicle health parameters.
type VehicleReading struct {
	EngineTempC  float64
	FuelPercent  float64
	SpeedKmh     float64
	BrakeWearPct float64
}

// VehicleSim random-walks the vehicle health parameters: temperature drifts,
// fuel and brake wear only ever decrease.
type VehicleSim struct {
	rng     *rand.Rand
	current VehicleReading
}

// NewVehicleSim creates a vehicle simulation from nominal starting values.
// A zero seed is replaced with the current time.
func NewVehicleSim(seed int64) *VehicleSim {
	return &VehicleSim{
		rng: rand.New(rand.NewSource(pickSeed(seed))),
		current: VehicleReading{
			EngineTempC:  85.0,
			FuelPercent:  75.0,
			SpeedKmh:     0,
			BrakeWearPct: 85.0,
		},
	}
}

// Next returns the next simulated vehicle state.
func (v *VehicleSim) Next() VehicleReading {
	v.current.EngineTempC += v.interval(-2.0, 3.0)
	v.current.FuelPercent += v.interval(-0.5, 0.0)
	if v.current.FuelPercent < 0 {
		v.current.FuelPercent = 0
	}

	v.current.SpeedKmh += v.interval(-5.0, 10.0)
	if v.current.SpeedKmh < 0 {
		v.current.SpeedKmh = 0
	}

	v.current.BrakeWearPct += v.interval(-0.1, 0.0)
	if v.current.BrakeWearPct < 0 {
		v.current.BrakeWearPct = 0
	}

	return v.current
}

func (v *VehicleSim) interval(min, max float64) float64 {
	return min + v.rng.Float64()*(max-min)
}
