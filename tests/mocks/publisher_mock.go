package mocks

import "github.com/stretchr/testify/mock"

// MockPublisher is a mock implementation of the telemetry Publisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBlocking(topic string, qos byte, retained bool, payload []byte) error {
	args := m.Called(topic, qos, retained, payload)
	return args.Error(0)
}
