package services

import (
	"errors"
	"testing"

	"infotainment-agent/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// stubService records lifecycle calls and can be made to fail.
type stubService struct {
	startErr error
	stopErr  error
	started  int
	stopped  int
}

func (s *stubService) Start() error {
	s.started++
	return s.startErr
}

func (s *stubService) Stop() error {
	s.stopped++
	return s.stopErr
}

// TestRegistry_StartStopOrder verifies services start in registration order
// and stop in reverse.
func TestRegistry_StartStopOrder(t *testing.T) {
	r := services.NewRegistry(zerolog.Nop())

	first := &stubService{}
	second := &stubService{}
	r.Register("first", first)
	r.Register("second", second)

	assert.NoError(t, r.StartServices())
	assert.Equal(t, 1, first.started)
	assert.Equal(t, 1, second.started)

	assert.NoError(t, r.StopServices())
	assert.Equal(t, 1, first.stopped)
	assert.Equal(t, 1, second.stopped)
}

// TestRegistry_StartFailureRollsBack verifies that a failed start stops the
// services that were already running.
func TestRegistry_StartFailureRollsBack(t *testing.T) {
	r := services.NewRegistry(zerolog.Nop())

	healthy := &stubService{}
	broken := &stubService{startErr: errors.New("boom")}
	r.Register("healthy", healthy)
	r.Register("broken", broken)

	err := r.StartServices()
	assert.Error(t, err)
	assert.Equal(t, 1, healthy.started)
	assert.Equal(t, 1, healthy.stopped)
	assert.Equal(t, 0, broken.stopped)
}

// TestRegistry_DuplicateRegistrationIgnored verifies re-registering a name
// keeps the original service.
func TestRegistry_DuplicateRegistrationIgnored(t *testing.T) {
	r := services.NewRegistry(zerolog.Nop())

	original := &stubService{}
	replacement := &stubService{}
	r.Register("drive", original)
	r.Register("drive", replacement)

	assert.NoError(t, r.StartServices())
	assert.Equal(t, 1, original.started)
	assert.Equal(t, 0, replacement.started)

	assert.NoError(t, r.StopServices())
}
