package controller

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/command"
	"kafeye/internal/tui/model"
)

// handleCommandKey edits the command line. Enter parses and dispatches;
// esc discards. Either way the model returns to normal mode.
func handleCommandKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CommandInput.Reset()
		m.CommandInput.Blur()
		m.Mode = model.ModeNormal
		return m, nil
	case "enter":
		text := m.CommandInput.Value()
		m.CommandInput.Reset()
		m.CommandInput.Blur()
		m.Mode = model.ModeNormal

		action, err := command.Parse(text)
		if err != nil {
			m.StatusMsg = err.Error()
			return m, nil
		}
		return executeAction(m, action)
	}

	var cmd tea.Cmd
	m.CommandInput, cmd = m.CommandInput.Update(msg)
	return m, cmd
}

func executeAction(m *model.Model, action command.Action) (*model.Model, tea.Cmd) {
	switch action.Kind {
	case command.KindSwitchScreen:
		screen, ok := model.ScreenByName(action.Arg)
		if !ok {
			m.StatusMsg = fmt.Sprintf("unknown screen: %s", action.Arg)
			return m, nil
		}
		m.Screen = screen
		m.ClampNav()
		return m, nil

	case command.KindProduce:
		m.ProduceTopic = action.Arg
		m.Screen = model.ScreenProducer
		m.StatusMsg = fmt.Sprintf("producer target: %s (press i to edit payload)", action.Arg)
		return m, nil

	case command.KindConsume:
		return startConsume(m, action.Arg)

	case command.KindConnect:
		return startConnect(m, strings.Split(action.Arg, ","))

	case command.KindDisconnect:
		m.Coordinator.Disconnect()
		m.StatusMsg = "disconnecting..."
		return m, nil

	case command.KindStatus:
		m.StatusMsg = statusSummary(m)
		return m, nil

	case command.KindQuit:
		return quit(m)
	}
	return m, nil
}

// startConsume switches the consume stream to topic. The previous stream
// is cancelled by the coordinator; the consumer screen shows the new
// topic immediately while records start on the next tick.
func startConsume(m *model.Model, topic string) (*model.Model, tea.Cmd) {
	m.ConsumeTopic = topic
	m.Messages = nil
	if nav := m.Nav[model.ScreenConsumer]; nav != nil {
		nav.Selected, nav.Scroll = 0, 0
	}
	m.Screen = model.ScreenConsumer
	m.StatusMsg = fmt.Sprintf("consuming %s", topic)
	m.Coordinator.StartConsume(topic)
	return m, nil
}

func startConnect(m *model.Model, brokers []string) (*model.Model, tea.Cmd) {
	cleaned := brokers[:0]
	for _, b := range brokers {
		if b = strings.TrimSpace(b); b != "" {
			cleaned = append(cleaned, b)
		}
	}
	if len(cleaned) == 0 {
		m.StatusMsg = "connect: no brokers given"
		return m, nil
	}
	m.Conn = model.ConnConnecting
	m.Brokers = cleaned
	m.ConnErr = ""
	m.StatusMsg = fmt.Sprintf("connecting to %s...", strings.Join(cleaned, ","))
	m.Coordinator.Connect(cleaned)
	return m, m.Spin.Tick
}

func statusSummary(m *model.Model) string {
	switch m.Conn {
	case model.ConnConnected:
		return fmt.Sprintf("connected to %s | topics: %d | groups: %d | buffer: %d/%d",
			strings.Join(m.Brokers, ","), len(m.Topics), len(m.Groups),
			len(m.Messages), m.Cfg.UI.MaxMessages)
	case model.ConnConnecting:
		return fmt.Sprintf("connecting to %s...", strings.Join(m.Brokers, ","))
	case model.ConnError:
		return "connection error: " + m.ConnErr
	default:
		return "disconnected"
	}
}
