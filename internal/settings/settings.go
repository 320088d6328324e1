package settings

import (
	"fmt"
	"strings"

	"infotainment-agent/pkg/file"
	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
)

// Theme is the display theme of the head unit.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Language is the UI language of the head unit.
type Language string

const (
	LanguageEnglish  Language = "english"
	LanguageSpanish  Language = "spanish"
	LanguageFrench   Language = "french"
	LanguageGerman   Language = "german"
	LanguageJapanese Language = "japanese"
)

// SoundSink is the part of the notification hub the settings control.
type SoundSink interface {
	notification.Notifier
	SetSoundEnabled(enabled bool)
}

// Values holds every user-configurable setting. It is the shape persisted
// to disk.
type Values struct {
	SystemVolume       int      `yaml:"system_volume"`      // 0-100
	DisplayBrightness  int      `yaml:"display_brightness"` // 0-100
	Theme              Theme    `yaml:"theme"`
	Language           Language `yaml:"language"`
	NightMode          bool     `yaml:"night_mode"`
	VoiceGuidance      bool     `yaml:"voice_guidance"`
	NotificationSounds bool     `yaml:"notification_sounds"`
	TimeFormat         string   `yaml:"time_format"`      // "12h" or "24h"
	TemperatureUnit    string   `yaml:"temperature_unit"` // "C" or "F"
	SoftwareVersion    string   `yaml:"software_version"`
}

// defaults returns the factory settings.
func defaults() Values {
	return Values{
		SystemVolume:       50,
		DisplayBrightness:  75,
		Theme:              ThemeAuto,
		Language:           LanguageEnglish,
		VoiceGuidance:      true,
		NotificationSounds: true,
		TimeFormat:         "12h",
		TemperatureUnit:    "C",
		SoftwareVersion:    "1.0.0",
	}
}

// Manager owns the system settings and their persistence. Invalid values are
// clamped or rejected with a Warning; a rejected value leaves the previous
// setting in place.
type Manager struct {
	values Values
	path   string

	fileClient file.FileOperations
	sink       SoundSink
	logger     zerolog.Logger
}

// NewManager creates a settings manager with factory defaults. path is where
// Save and Load persist the values.
func NewManager(path string, fileClient file.FileOperations, sink SoundSink, logger zerolog.Logger) *Manager {
	return &Manager{
		values:     defaults(),
		path:       path,
		fileClient: fileClient,
		sink:       sink,
		logger:     logger,
	}
}

// Values returns a copy of the current settings.
func (m *Manager) Values() Values { return m.values }

// SetSystemVolume sets the master volume, clamped to [0, 100]. Muting the
// system is announced.
func (m *Manager) SetSystemVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	m.values.SystemVolume = volume

	if volume == 0 {
		m.sink.Notify("System muted", notification.Info)
	}
}

// SetDisplayBrightness sets the brightness, clamped to [0, 100]. Very low
// brightness draws a visibility warning.
func (m *Manager) SetDisplayBrightness(brightness int) {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 100 {
		brightness = 100
	}
	m.values.DisplayBrightness = brightness

	if brightness < 20 {
		m.sink.Notify("Low brightness - may affect visibility", notification.Warning)
	}
}

// SetTheme changes the display theme.
func (m *Manager) SetTheme(theme Theme) {
	switch theme {
	case ThemeLight, ThemeDark, ThemeAuto:
		m.values.Theme = theme
		m.sink.Notify(fmt.Sprintf("Theme changed to %s", theme), notification.Info)
	default:
		m.sink.Notify(fmt.Sprintf("Unknown theme: %s", theme), notification.Warning)
	}
}

// SetLanguage changes the UI language.
func (m *Manager) SetLanguage(lang Language) {
	switch lang {
	case LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman, LanguageJapanese:
		m.values.Language = lang
		m.sink.Notify(fmt.Sprintf("Language changed to %s", lang), notification.Info)
	default:
		m.sink.Notify(fmt.Sprintf("Unsupported language: %s", lang), notification.Warning)
	}
}

// SetNightMode toggles night mode. Enabling it dims a bright display to 30%.
func (m *Manager) SetNightMode(enabled bool) {
	m.values.NightMode = enabled

	if enabled && m.values.DisplayBrightness > 30 {
		m.SetDisplayBrightness(30)
		m.sink.Notify("Brightness auto-adjusted for night mode", notification.Info)
	}
}

// SetVoiceGuidance toggles spoken navigation guidance.
func (m *Manager) SetVoiceGuidance(enabled bool) {
	m.values.VoiceGuidance = enabled
}

// SetNotificationSounds toggles alert sounds and forwards the flag to the hub.
func (m *Manager) SetNotificationSounds(enabled bool) {
	m.values.NotificationSounds = enabled
	m.sink.SetSoundEnabled(enabled)
}

// SetTimeFormat sets "12h" or "24h"; anything else is rejected with a Warning.
func (m *Manager) SetTimeFormat(format string) {
	if format != "12h" && format != "24h" {
		m.sink.Notify("Invalid time format. Use '12h' or '24h'", notification.Warning)
		return
	}
	m.values.TimeFormat = format
}

// SetTemperatureUnit sets "C" or "F"; anything else is rejected with a Warning.
func (m *Manager) SetTemperatureUnit(unit string) {
	if unit != "C" && unit != "F" {
		m.sink.Notify("Invalid temperature unit. Use 'C' or 'F'", notification.Warning)
		return
	}
	m.values.TemperatureUnit = unit
}

// ResetToDefaults restores factory settings, keeping the installed software
// version.
func (m *Manager) ResetToDefaults() {
	version := m.values.SoftwareVersion
	m.values = defaults()
	m.values.SoftwareVersion = version
	m.sink.SetSoundEnabled(m.values.NotificationSounds)
	m.sink.Notify("Settings reset to defaults", notification.Info)
}

// Save persists the current settings to the configured path as YAML.
func (m *Manager) Save() error {
	if err := m.fileClient.WriteYamlFile(m.path, m.values); err != nil {
		m.logger.Error().Err(err).Str("path", m.path).Msg("Failed to save settings")
		return err
	}
	m.logger.Info().Str("path", m.path).Msg("Settings saved")
	return nil
}

// Load reads persisted settings from the configured path. A missing file is
// not an error; defaults stay in effect.
func (m *Manager) Load() error {
	exists, err := m.fileClient.IsFileExists(m.path)
	if err != nil {
		return err
	}
	if !exists {
		m.logger.Info().Str("path", m.path).Msg("No saved settings, using defaults")
		return nil
	}

	var loaded Values
	if err := m.fileClient.ReadYamlFile(m.path, &loaded); err != nil {
		m.logger.Error().Err(err).Str("path", m.path).Msg("Failed to load settings")
		return err
	}

	m.values = loaded
	m.sink.SetSoundEnabled(loaded.NotificationSounds)
	m.logger.Info().Str("path", m.path).Msg("Settings loaded")
	return nil
}

// Report renders all current settings.
func (m *Manager) Report() string {
	var b strings.Builder
	b.WriteString("=== SYSTEM SETTINGS ===\n")
	fmt.Fprintf(&b, "System Volume: %d%%\n", m.values.SystemVolume)
	fmt.Fprintf(&b, "Display Brightness: %d%%\n", m.values.DisplayBrightness)
	fmt.Fprintf(&b, "Theme: %s\n", m.values.Theme)
	fmt.Fprintf(&b, "Language: %s\n", m.values.Language)
	fmt.Fprintf(&b, "Night Mode: %s\n", onOff(m.values.NightMode))
	fmt.Fprintf(&b, "Voice Guidance: %s\n", onOff(m.values.VoiceGuidance))
	fmt.Fprintf(&b, "Notification Sounds: %s\n", onOff(m.values.NotificationSounds))
	fmt.Fprintf(&b, "Time Format: %s\n", m.values.TimeFormat)
	fmt.Fprintf(&b, "Temperature Unit: %s\n", m.values.TemperatureUnit)
	fmt.Fprintf(&b, "Software Version: %s\n", m.values.SoftwareVersion)
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
