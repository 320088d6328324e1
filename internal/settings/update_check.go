package settings

import (
	"fmt"

	"infotainment-agent/pkg/notification"

	"github.com/Masterminds/semver/v3"
)

// CheckForUpdate compares the installed software version against an
// available one and raises an Info notification when the available version
// is newer. Malformed versions are reported as errors and change nothing.
func (m *Manager) CheckForUpdate(available string) (bool, error) {
	installed, err := semver.NewVersion(m.values.SoftwareVersion)
	if err != nil {
		return false, fmt.Errorf("invalid installed version %q: %w", m.values.SoftwareVersion, err)
	}

	candidate, err := semver.NewVersion(available)
	if err != nil {
		return false, fmt.Errorf("invalid available version %q: %w", available, err)
	}

	if !candidate.GreaterThan(installed) {
		m.logger.Debug().
			Str("installed", installed.String()).
			Str("available", candidate.String()).
			Msg("Software is up to date")
		return false, nil
	}

	m.sink.Notify(fmt.Sprintf("Software update available: %s (installed: %s)",
		candidate, installed), notification.Info)
	return true, nil
}

// ApplyUpdate records a new installed software version after validating it.
func (m *Manager) ApplyUpdate(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}

	m.values.SoftwareVersion = v.String()
	m.sink.Notify(fmt.Sprintf("Software updated to %s", v), notification.Info)
	return nil
}
