package diagnostics

import (
	"context"
	"fmt"

	"infotainment-agent/pkg/notification"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

// Limits are the alerting thresholds for one collector's value.
type Limits struct {
	WarnAt float64 `yaml:"warn_at"`
	CritAt float64 `yaml:"crit_at"`
}

type entry struct {
	collector Collector
	limits    Limits
}

// Registry manages the health collectors and raises notifications when a
// sampled value crosses its limits. Collectors can be added and removed
// dynamically.
type Registry struct {
	entries cmap.ConcurrentMap[string, entry]
	sink    notification.Notifier
	logger  zerolog.Logger
}

// NewRegistry creates an empty diagnostics registry.
func NewRegistry(sink notification.Notifier, logger zerolog.Logger) *Registry {
	return &Registry{
		entries: cmap.New[entry](),
		sink:    sink,
		logger:  logger,
	}
}

// Register adds a collector with its alerting limits.
func (r *Registry) Register(c Collector, limits Limits) {
	r.entries.Set(c.Name(), entry{collector: c, limits: limits})
}

// Deregister removes a collector by name.
func (r *Registry) Deregister(name string) {
	r.entries.Remove(name)
}

// RunChecks samples every collector and notifies when a value crosses its
// warning or critical limit. Collector failures are logged and skipped.
func (r *Registry) RunChecks(ctx context.Context) {
	for name, e := range r.entries.Items() {
		value, err := e.collector.Collect(ctx)
		if err != nil {
			r.logger.Error().Err(err).Str("collector", name).Msg("Diagnostics collection failed")
			continue
		}

		switch {
		case e.limits.CritAt > 0 && value >= e.limits.CritAt:
			r.sink.Notify(fmt.Sprintf("Head unit %s usage critical: %.1f%s",
				name, value, e.collector.Unit()), notification.Critical)
		case e.limits.WarnAt > 0 && value >= e.limits.WarnAt:
			r.sink.Notify(fmt.Sprintf("Head unit %s usage high: %.1f%s",
				name, value, e.collector.Unit()), notification.Warning)
		}
	}
}
