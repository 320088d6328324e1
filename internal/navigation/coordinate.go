package navigation

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for great-circle math.
const earthRadiusKm = 6371.0

// Coordinate is an immutable geographic position. Altitude is carried for
// display but never affects validity.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// Valid reports whether latitude and longitude are within range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90.0 && c.Latitude <= 90.0 &&
		c.Longitude >= -180.0 && c.Longitude <= 180.0
}

// String formats the coordinate to six decimal places, with the altitude
// appended when it is non-zero.
func (c Coordinate) String() string {
	if c.Altitude != 0 {
		return fmt.Sprintf("%.6f, %.6f (alt: %.1fm)", c.Latitude, c.Longitude, c.Altitude)
	}
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// Distance returns the great-circle distance between a and b in kilometers
// using the Haversine formula, or -1 if either coordinate is invalid.
func Distance(a, b Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return -1.0
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial great-circle bearing from one coordinate to
// another in degrees [0, 360). Invalid input yields 0; callers that need to
// distinguish the error case must validate beforehand.
func Bearing(from, to Coordinate) float64 {
	if !from.Valid() || !to.Valid() {
		return 0.0
	}

	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return normalizeDegrees(math.Atan2(y, x) * 180 / math.Pi)
}

// normalizeDegrees reduces an angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
