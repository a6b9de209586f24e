package model

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/kafka"
	"kafeye/pkg/logging"
)

// Tick schedules the next render tick.
func Tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RefreshInterval returns the configured render cadence.
func (m *Model) RefreshInterval() time.Duration {
	return time.Duration(m.Cfg.UI.RefreshIntervalMs) * time.Millisecond
}

// WaitForDataPlane blocks on the coordinator's event channel and delivers
// the next event. The handler re-arms it after each message, so the event
// loop always has exactly one outstanding reader.
func WaitForDataPlane(events <-chan kafka.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return DataPlaneMsg{Event: ev}
	}
}

// ListenForLogs delivers the next log entry to the overlay.
func ListenForLogs(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
