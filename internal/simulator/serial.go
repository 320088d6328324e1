package simulator

import (
	"io"

	"github.com/tarm/serial"
)

// SerialSource reads NMEA sentences from a GPS receiver on a serial port.
// The port is opened on first use and stays open across readings.
type SerialSource struct {
	portName string
	baudRate int

	port  io.ReadCloser
	inner *NMEASource
}

// NewSerialSource creates a source for the GPS receiver at the given port
// and baud rate.
func NewSerialSource(portName string, baudRate int) *SerialSource {
	return &SerialSource{
		portName: portName,
		baudRate: baudRate,
	}
}

// Next returns the next reading from the receiver.
func (s *SerialSource) Next() (Reading, error) {
	if s.port == nil {
		port, err := serial.OpenPort(&serial.Config{Name: s.portName, Baud: s.baudRate})
		if err != nil {
			return Reading{}, err
		}
		s.port = port
		s.inner = NewNMEASource(port)
	}

	return s.inner.Next()
}

// Close releases the serial port.
func (s *SerialSource) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	s.inner = nil
	return err
}
