package simulator

import (
	"bufio"
	"io"
	"os"
	"strings"

	"infotainment-agent/internal/navigation"

	"github.com/adrianmo/go-nmea"
)

// knotsToKmh converts NMEA ground speed (knots) to km/h.
const knotsToKmh = 1.852

// NMEASource builds readings from a stream of NMEA sentences. A reading is
// emitted for every GGA sentence (position, satellites, accuracy); RMC
// sentences update the speed and heading carried into subsequent readings.
type NMEASource struct {
	scanner    *bufio.Scanner
	speedKmh   float64
	headingDeg float64
}

// NewNMEASource creates a source reading NMEA sentences from r.
func NewNMEASource(r io.Reader) *NMEASource {
	return &NMEASource{scanner: bufio.NewScanner(r)}
}

// Next scans forward to the next GGA sentence and returns the reading built
// from it. ErrExhausted is returned at end of stream; malformed lines are
// skipped.
func (n *NMEASource) Next() (Reading, error) {
	for n.scanner.Scan() {
		line := strings.TrimSpace(n.scanner.Text())
		if line == "" {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			continue
		}

		switch s := sentence.(type) {
		case nmea.RMC:
			n.speedKmh = s.Speed * knotsToKmh
			n.headingDeg = s.Course
		case nmea.GGA:
			return Reading{
				Coordinate: navigation.Coordinate{
					Latitude:  s.Latitude,
					Longitude: s.Longitude,
					Altitude:  s.Altitude,
				},
				SpeedKmh:   n.speedKmh,
				HeadingDeg: n.headingDeg,
				Satellites: int(s.NumSatellites),
				// HDOP stands in for accuracy, as with the GGA-based
				// hardware providers.
				AccuracyM: s.HDOP,
			}, nil
		}
	}

	if err := n.scanner.Err(); err != nil {
		return Reading{}, err
	}
	return Reading{}, ErrExhausted
}

// NMEAFileSource replays a recorded NMEA log from disk.
type NMEAFileSource struct {
	*NMEASource
	f *os.File
}

// NewNMEAFileSource opens the log at path for replay.
func NewNMEAFileSource(path string) (*NMEAFileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &NMEAFileSource{NMEASource: NewNMEASource(f), f: f}, nil
}

// Close releases the underlying log file.
func (n *NMEAFileSource) Close() error {
	return n.f.Close()
}
