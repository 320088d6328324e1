package diagnostics

import (
	"context"
	"errors"
	"testing"

	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeCollector struct {
	name  string
	value float64
	err   error
}

func (f *fakeCollector) Name() string { return f.name }

func (f *fakeCollector) Unit() string { return "%" }

func (f *fakeCollector) Collect(context.Context) (float64, error) { return f.value, f.err }

func TestRegistry_RunChecks(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	r := NewRegistry(hub, zerolog.Nop())

	r.Register(&fakeCollector{name: "cpu", value: 45}, Limits{WarnAt: 80, CritAt: 95})
	r.Register(&fakeCollector{name: "memory", value: 85}, Limits{WarnAt: 80, CritAt: 95})
	r.Register(&fakeCollector{name: "disk", value: 97}, Limits{WarnAt: 80, CritAt: 95})

	r.RunChecks(context.Background())

	assert.Equal(t, 1, hub.CountByLevel(notification.Warning))
	assert.Equal(t, 1, hub.CountByLevel(notification.Critical))
	assert.Equal(t, 2, hub.Count(), "healthy collectors raise nothing")
}

func TestRegistry_CollectorErrorSkipped(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	r := NewRegistry(hub, zerolog.Nop())

	r.Register(&fakeCollector{name: "cpu", err: errors.New("sensor gone")}, Limits{WarnAt: 50})

	r.RunChecks(context.Background())
	assert.Equal(t, 0, hub.Count())
}

func TestRegistry_Deregister(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	r := NewRegistry(hub, zerolog.Nop())

	r.Register(&fakeCollector{name: "cpu", value: 99}, Limits{CritAt: 95})
	r.Deregister("cpu")

	r.RunChecks(context.Background())
	assert.Equal(t, 0, hub.Count())
}

func TestRegistry_ZeroLimitsDisabled(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	r := NewRegistry(hub, zerolog.Nop())

	r.Register(&fakeCollector{name: "cpu", value: 99}, Limits{})

	r.RunChecks(context.Background())
	assert.Equal(t, 0, hub.Count())
}

func TestCollectors_Metadata(t *testing.T) {
	cpu := &CPUCollector{Logger: zerolog.Nop()}
	assert.Equal(t, "cpu", cpu.Name())
	assert.Equal(t, "%", cpu.Unit())

	mem := &MemoryCollector{Logger: zerolog.Nop()}
	assert.Equal(t, "memory", mem.Name())
	assert.Equal(t, "%", mem.Unit())
}

// TestRegistry_SystemCollectors wires the real gopsutil-backed collectors the
// way the agent does and runs a sweep against them.
func TestRegistry_SystemCollectors(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	r := NewRegistry(hub, zerolog.Nop())

	r.Register(&CPUCollector{Logger: zerolog.Nop()}, Limits{WarnAt: 100.1, CritAt: 100.2})
	r.Register(&MemoryCollector{Logger: zerolog.Nop()}, Limits{WarnAt: 100.1, CritAt: 100.2})

	r.RunChecks(context.Background())

	assert.Equal(t, 0, hub.Count(), "usage cannot exceed 100%")
}
