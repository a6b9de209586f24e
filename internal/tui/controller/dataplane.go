package controller

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/kafka"
	"kafeye/internal/tui/model"
)

// handleDataPlane applies a coordinator event to the model and re-arms
// the event listener. Events only ever reach the model through here, so
// the update loop stays the single writer.
func handleDataPlane(m *model.Model, ev kafka.Event) (*model.Model, tea.Cmd) {
	switch ev := ev.(type) {
	case kafka.ConnectedEvent:
		m.Conn = model.ConnConnected
		m.Brokers = ev.Brokers
		m.ConnErr = ""
		m.ErrorBanner = ""
		m.StatusMsg = "connected to " + strings.Join(ev.Brokers, ",")

	case kafka.ConnectionErrorEvent:
		m.Conn = model.ConnError
		m.ConnErr = ev.Err.Error()
		m.ErrorBanner = "connection failed: " + ev.Err.Error()

	case kafka.DisconnectedEvent:
		m.Conn = model.ConnDisconnected
		m.Topics = nil
		m.Groups = nil
		m.StatusMsg = "disconnected"
		m.ClampNav()

	case kafka.TopicsEvent:
		m.Topics = ev.Topics
		m.ClampNav()

	case kafka.GroupsEvent:
		m.Groups = ev.Groups
		m.ClampNav()

	case kafka.StatsEvent:
		m.Stats = ev.Stats

	case kafka.ConsumeStartedEvent:
		m.StatusMsg = "consuming " + ev.Topic

	case kafka.ProduceResultEvent:
		if ev.Err != nil {
			m.ErrorBanner = fmt.Sprintf("produce failed: %v", ev.Err)
		} else {
			m.StatusMsg = fmt.Sprintf("produced to %s [%d] @ %d",
				ev.Result.Topic, ev.Result.Partition, ev.Result.Offset)
		}

	case kafka.StreamErrorEvent:
		m.ErrorBanner = fmt.Sprintf("%s: %v", ev.Op, ev.Err)
	}

	return m, model.WaitForDataPlane(m.Coordinator.Events())
}
