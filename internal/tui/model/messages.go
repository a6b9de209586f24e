package model

import (
	"time"

	"kafeye/internal/kafka"
	"kafeye/pkg/logging"
)

// TickMsg fires on the fixed render cadence (ui.refresh_interval_ms).
type TickMsg time.Time

// DataPlaneMsg wraps one coordinator event for the update loop.
type DataPlaneMsg struct {
	Event kafka.Event
}

// NewLogEntryMsg delivers one log entry to the TUI log overlay.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}
