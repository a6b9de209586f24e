package controller

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/tui/model"
)

// pendingKeyTimeout bounds how long a leading "g" waits for its pair.
const pendingKeyTimeout = 500 * time.Millisecond

// handleNormalKey interprets one normal-mode key against the active
// screen. Every (screen, key) combination has a defined outcome; anything
// outside the table is a no-op with a status-bar hint, never a panic.
func handleNormalKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	nav := m.CurrentNav()

	// A leading "g" is pending until its pair arrives or it expires.
	if m.PendingKey == "g" {
		expired := time.Since(m.PendingAt) > pendingKeyTimeout
		m.PendingKey = ""
		if !expired && msg.String() == "g" {
			nav.Selected = 0
			nav.Scroll = 0
			return m, nil
		}
		// Unmatched or stale pending: fall through and treat the key
		// on its own.
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return quit(m)

	case key.Matches(msg, keys.Up):
		if nav.Selected > 0 {
			nav.Selected--
		}
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.Down):
		nav.Selected++
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.Top):
		m.PendingKey = "g"
		m.PendingAt = time.Now()
		return m, nil

	case key.Matches(msg, keys.Bottom):
		nav.Selected = m.ListLen() - 1
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.PageUp):
		nav.Selected -= m.VisibleRows()
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.PageDown):
		nav.Selected += m.VisibleRows()
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.NextScreen):
		m.Screen = m.Screen.Next()
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.PrevScreen):
		m.Screen = m.Screen.Prev()
		m.ClampNav()
		return m, nil

	case key.Matches(msg, keys.Command):
		m.Mode = model.ModeCommand
		m.CommandInput.Reset()
		m.CommandInput.Focus()
		return m, nil

	case key.Matches(msg, keys.Insert):
		return enterInsert(m)

	case key.Matches(msg, keys.Filter):
		if m.Screen != model.ScreenTopics {
			m.StatusMsg = "filtering is available on the Topics screen"
			return m, nil
		}
		m.Mode = model.ModeInsert
		m.FilterInput.Focus()
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return refreshScreen(m)

	case key.Matches(msg, keys.Yank):
		return yankSelected(m)

	case key.Matches(msg, keys.ToggleLog):
		m.ShowLog = !m.ShowLog
		return m, nil

	case key.Matches(msg, keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil

	case msg.String() == "h", msg.String() == "l", msg.String() == "left", msg.String() == "right":
		// No horizontal navigation on any current screen.
		return m, nil

	case msg.String() >= "1" && msg.String() <= "7":
		// The tab bar numbers the screens; jump straight to one.
		m.Screen = model.Screen(msg.String()[0] - '1')
		m.ClampNav()
		return m, nil

	case msg.String() == "enter":
		return selectCurrent(m)
	}

	// Unrecognized input is a defined no-op.
	return m, nil
}

func enterInsert(m *model.Model) (*model.Model, tea.Cmd) {
	if !m.Screen.Editable() {
		m.StatusMsg = fmt.Sprintf("no editable field on %s", m.Screen)
		return m, nil
	}
	m.Mode = model.ModeInsert
	switch m.Screen {
	case model.ScreenProducer:
		m.ProducerInput.Focus()
	case model.ScreenTopics:
		m.FilterInput.Focus()
	}
	return m, nil
}

func refreshScreen(m *model.Model) (*model.Model, tea.Cmd) {
	switch m.Screen {
	case model.ScreenTopics:
		m.Coordinator.RefreshTopics()
	case model.ScreenGroups:
		m.Coordinator.RefreshGroups()
	case model.ScreenDashboard, model.ScreenMonitor:
		m.Coordinator.RefreshTopics()
		m.Coordinator.RefreshGroups()
	default:
		return m, nil
	}
	m.StatusMsg = fmt.Sprintf("refreshing %s...", m.Screen)
	return m, nil
}

// yankSelected copies the selected message payload to the clipboard.
func yankSelected(m *model.Model) (*model.Model, tea.Cmd) {
	if m.Screen != model.ScreenConsumer {
		return m, nil
	}
	sel := m.CurrentNav().Selected
	if sel >= len(m.Messages) {
		return m, nil
	}
	if err := clipboard.WriteAll(m.Messages[sel].Value); err != nil {
		m.StatusMsg = "clipboard unavailable"
		return m, nil
	}
	msg := m.Messages[sel]
	m.StatusMsg = fmt.Sprintf("yanked %s/%d@%d", msg.Topic, msg.Partition, msg.Offset)
	return m, nil
}

// selectCurrent acts on the highlighted row: on Topics it starts consuming
// the selected topic.
func selectCurrent(m *model.Model) (*model.Model, tea.Cmd) {
	if m.Screen != model.ScreenTopics {
		return m, nil
	}
	topics := m.FilteredTopics()
	sel := m.CurrentNav().Selected
	if sel >= len(topics) {
		return m, nil
	}
	return startConsume(m, topics[sel].Name)
}
