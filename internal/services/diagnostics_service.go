package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"infotainment-agent/internal/diagnostics"

	"github.com/rs/zerolog"
)

// DiagnosticsService periodically runs the head-unit health checks.
type DiagnosticsService struct {
	interval time.Duration
	registry *diagnostics.Registry
	logger   zerolog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewDiagnosticsService creates a new DiagnosticsService instance.
func NewDiagnosticsService(interval time.Duration, registry *diagnostics.Registry, logger zerolog.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		interval: interval,
		registry: registry,
		logger:   logger,
	}
}

// Start begins the periodic health checks.
func (s *DiagnosticsService) Start() error {
	if s.running {
		s.logger.Warn().Msg("DiagnosticsService is already running")
		return errors.New("diagnostics service is already running")
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.registry.RunChecks(s.ctx)
			case <-s.ctx.Done():
				s.logger.Info().Msg("DiagnosticsService is stopping")
				return
			}
		}
	}()

	s.logger.Info().Dur("interval", s.interval).Msg("DiagnosticsService started")
	return nil
}

// Stop halts the health check loop.
func (s *DiagnosticsService) Stop() error {
	if !s.running {
		s.logger.Warn().Msg("DiagnosticsService is not running")
		return errors.New("diagnostics service is not running")
	}

	s.cancel()
	s.wg.Wait()

	s.running = false
	s.logger.Info().Msg("DiagnosticsService stopped")
	return nil
}
