// Package simulator provides pluggable sensor sources for the navigation
// core. The core consumes readings through the Source interface and never
// fabricates data itself, so tests can drive it with scripted input.
package simulator

import (
	"errors"

	"infotainment-agent/internal/navigation"
)

// ErrExhausted is returned by finite sources once every reading is consumed.
var ErrExhausted = errors.New("signal source exhausted")

// Reading is one raw sensor sample: position plus the kinematic and fix
// quality values the navigator consumes.
type Reading struct {
	Coordinate navigation.Coordinate
	SpeedKmh   float64
	HeadingDeg float64
	Satellites int
	AccuracyM  float64
}

// Source produces successive sensor readings at the caller's cadence.
type Source interface {
	Next() (Reading, error)
}

// ScriptedSource replays a fixed sequence of readings and then reports
// ErrExhausted. Used for deterministic tests and demos.
type ScriptedSource struct {
	readings []Reading
	pos      int
}

// NewScriptedSource creates a source that replays the given readings in order.
func NewScriptedSource(readings []Reading) *ScriptedSource {
	return &ScriptedSource{readings: readings}
}

// Next returns the next scripted reading.
func (s *ScriptedSource) Next() (Reading, error) {
	if s.pos >= len(s.readings) {
		return Reading{}, ErrExhausted
	}
	r := s.readings[s.pos]
	s.pos++
	return r, nil
}
