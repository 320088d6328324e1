package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service defines the lifecycle every long-running subsystem implements.
type Service interface {
	Start() error
	Stop() error
}

// Registry manages the lifecycle of the registered services.
type Registry struct {
	services    map[string]Service
	serviceKeys []string // registration order
	logger      zerolog.Logger
}

// NewRegistry initializes an empty service registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		services: make(map[string]Service),
		logger:   logger,
	}
}

// Register adds a new service to the registry.
func (r *Registry) Register(name string, svc Service) {
	if _, exists := r.services[name]; exists {
		r.logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	r.services[name] = svc
	r.serviceKeys = append(r.serviceKeys, name)
	r.logger.Info().Msgf("Registered service: %s", name)
}

// StartServices initiates all registered services in order. If a service
// fails to start, the already started services are stopped again.
func (r *Registry) StartServices() error {
	started := []string{}

	for _, name := range r.serviceKeys {
		r.logger.Info().Msgf("Starting service: %s", name)
		if err := r.services[name].Start(); err != nil {
			r.logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			r.logger.Warn().Msg("Stopping already started services due to startup failure...")
			for i := len(started) - 1; i >= 0; i-- {
				_ = r.services[started[i]].Stop()
			}
			return err
		}
		started = append(started, name)
	}

	return nil
}

// StopServices stops all services in reverse registration order.
func (r *Registry) StopServices() error {
	var stopErrors []error
	for i := len(r.serviceKeys) - 1; i >= 0; i-- {
		name := r.serviceKeys[i]
		if err := r.services[name].Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			r.logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}
