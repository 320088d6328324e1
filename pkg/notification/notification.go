package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Level represents the severity of a notification.
type Level int

const (
	Info Level = iota
	Warning
	Critical
)

// String returns the human-readable form of the level.
func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Notification is a single alert or informational message raised by a subsystem.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Level     Level     `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier is the sink interface every subsystem publishes alerts through.
// The owning process creates a single Hub and hands the interface value to
// each subsystem at construction.
type Notifier interface {
	Notify(message string, level Level)
}

// Hub is the central in-memory notification store shared by all subsystems.
// Appends are serialized internally; notifications are kept in arrival order.
type Hub struct {
	mu            sync.Mutex
	notifications []Notification
	soundEnabled  bool
	logger        zerolog.Logger
}

// NewHub creates a notification hub with sounds enabled.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		soundEnabled: true,
		logger:       logger,
	}
}

// Notify appends a new notification and logs it at a level matching its severity.
func (h *Hub) Notify(message string, level Level) {
	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Level:     level,
		Timestamp: time.Now(),
	}

	h.mu.Lock()
	h.notifications = append(h.notifications, n)
	sound := h.soundEnabled
	h.mu.Unlock()

	event := h.logger.Info()
	switch level {
	case Warning:
		event = h.logger.Warn()
	case Critical:
		event = h.logger.Error()
	}
	event.
		Str("notification_id", n.ID).
		Str("level", level.String()).
		Bool("sound", sound).
		Msg(message)
}

// All returns a copy of every stored notification in arrival order.
func (h *Hub) All() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, len(h.notifications))
	copy(out, h.notifications)
	return out
}

// Clear removes all stored notifications.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifications = nil
}

// Count returns the total number of stored notifications.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.notifications)
}

// CountByLevel returns the number of notifications at the given severity.
func (h *Hub) CountByLevel(level Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, n := range h.notifications {
		if n.Level == level {
			count++
		}
	}
	return count
}

// HasCritical reports whether any critical notification is present.
func (h *Hub) HasCritical() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, n := range h.notifications {
		if n.Level == Critical {
			return true
		}
	}
	return false
}

// SetSoundEnabled toggles the alert sound flag.
func (h *Hub) SetSoundEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.soundEnabled = enabled
}

// SoundEnabled reports whether alert sounds are enabled.
func (h *Hub) SoundEnabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.soundEnabled
}
