package diagnostics

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Collector samples one head-unit health metric.
type Collector interface {
	Name() string
	Collect(ctx context.Context) (float64, error)
	Unit() string
}

// CPUCollector samples overall CPU utilization of the head unit.
type CPUCollector struct {
	Logger zerolog.Logger
}

func (c *CPUCollector) Name() string { return "cpu" }

func (c *CPUCollector) Unit() string { return "%" }

func (c *CPUCollector) Collect(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		c.Logger.Error().Err(err).Msg("Failed to get CPU usage")
		return 0, err
	}
	if len(percentages) == 0 {
		c.Logger.Warn().Msg("CPU usage data is empty")
		return 0, nil
	}

	c.Logger.Debug().Float64("cpu_usage", percentages[0]).Msg("CPU usage collected")
	return percentages[0], nil
}

// MemoryCollector samples memory utilization of the head unit.
type MemoryCollector struct {
	Logger zerolog.Logger
}

func (m *MemoryCollector) Name() string { return "memory" }

func (m *MemoryCollector) Unit() string { return "%" }

func (m *MemoryCollector) Collect(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to get memory usage")
		return 0, err
	}

	m.Logger.Debug().Float64("memory_usage", vm.UsedPercent).Msg("Memory usage collected")
	return vm.UsedPercent, nil
}
