package controller

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/tui/model"
)

// handleInsertKey edits the active screen's editable field. Submit
// dispatches (produce / commit filter) and returns to normal mode; cancel
// discards the edit.
func handleInsertKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return leaveInsert(m, true)
	case "enter":
		return submitInsert(m)
	}

	var cmd tea.Cmd
	switch m.Screen {
	case model.ScreenProducer:
		m.ProducerInput, cmd = m.ProducerInput.Update(msg)
	case model.ScreenTopics:
		m.FilterInput, cmd = m.FilterInput.Update(msg)
		// The filter applies as it is typed; enter just leaves insert.
		m.TopicFilter = m.FilterInput.Value()
		m.ClampNav()
	default:
		// Insert on a non-editable screen cannot be reached through the
		// normal-mode table; recover to a defined state anyway.
		m.Mode = model.ModeNormal
	}
	return m, cmd
}

func leaveInsert(m *model.Model, discard bool) (*model.Model, tea.Cmd) {
	switch m.Screen {
	case model.ScreenProducer:
		if discard {
			m.ProducerInput.Reset()
		}
		m.ProducerInput.Blur()
	case model.ScreenTopics:
		if discard {
			m.FilterInput.Reset()
			m.TopicFilter = ""
			m.ClampNav()
		}
		m.FilterInput.Blur()
	}
	m.Mode = model.ModeNormal
	return m, nil
}

func submitInsert(m *model.Model) (*model.Model, tea.Cmd) {
	switch m.Screen {
	case model.ScreenProducer:
		return submitProduce(m)
	case model.ScreenTopics:
		m.TopicFilter = m.FilterInput.Value()
		m.ClampNav()
		return leaveInsert(m, false)
	}
	return leaveInsert(m, true)
}

// submitProduce hands the edited payload to the data plane as a one-shot
// and returns to normal mode. "key:payload" sets a record key; anything
// else is the whole payload.
func submitProduce(m *model.Model) (*model.Model, tea.Cmd) {
	body := m.ProducerInput.Value()
	if strings.TrimSpace(body) == "" {
		return leaveInsert(m, true)
	}
	if m.ProduceTopic == "" {
		m.StatusMsg = "no topic selected; use :produce <topic>"
		return leaveInsert(m, true)
	}

	var key, value string
	if i := strings.Index(body, ":"); i > 0 && !strings.ContainsAny(body[:i], " \t") {
		key, value = body[:i], body[i+1:]
	} else {
		value = body
	}

	m.Coordinator.Produce(m.ProduceTopic, key, value)
	m.StatusMsg = fmt.Sprintf("producing to %s...", m.ProduceTopic)
	m.ProducerInput.Reset()
	return leaveInsert(m, false)
}
