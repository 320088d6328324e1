package navigation

const (
	// minSatellites is the fewest visible satellites for a usable fix.
	minSatellites = 4
	// maxAccuracyM is the worst horizontal accuracy (meters) for a usable fix.
	maxAccuracyM = 10.0
)

// SignalState describes the quality of the current GPS fix. Usable is derived
// from the satellite count and accuracy, never set directly.
type SignalState struct {
	Satellites int     `json:"satellites"`
	AccuracyM  float64 `json:"accuracy_m"`
	Usable     bool    `json:"usable"`
}

// update clamps the raw inputs, recomputes usability and reports whether
// usability changed. Steady-state polling produces no transition, so callers
// only react to genuine quality changes.
func (s *SignalState) update(satellites int, accuracyM float64) (changed, usable bool) {
	if satellites < 0 {
		satellites = 0
	}
	if accuracyM < 0 {
		accuracyM = 0
	}

	previous := s.Usable
	s.Satellites = satellites
	s.AccuracyM = accuracyM
	s.Usable = satellites >= minSatellites && accuracyM <= maxAccuracyM

	return s.Usable != previous, s.Usable
}
