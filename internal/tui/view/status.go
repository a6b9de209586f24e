package view

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"kafeye/internal/tui/model"
)

func renderHeader(m *model.Model, width int) string {
	left := TitleStyle.Render("kafeye")

	var conn string
	switch m.Conn {
	case model.ConnConnected:
		conn = SuccessStyle.Render("● " + strings.Join(m.Brokers, ","))
	case model.ConnConnecting:
		conn = InfoStyle.Render(m.Spin.View() + "connecting " + strings.Join(m.Brokers, ","))
	case model.ConnError:
		conn = ErrorStyle.Render("✗ connection error")
	default:
		conn = SubtleStyle.Render("○ disconnected")
	}

	line := left + "  " + conn
	if m.ConsumeTopic != "" {
		line += SubtleStyle.Render("  consuming: ") + InfoStyle.Render(m.ConsumeTopic)
	}
	return runewidth.Truncate(line, width, "…")
}

func renderTabBar(m *model.Model, width int) string {
	tabs := make([]string, 0, len(model.AllScreens()))
	for _, s := range model.AllScreens() {
		label := fmt.Sprintf(" %d:%s ", int(s)+1, s)
		if s == m.Screen {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return runewidth.Truncate(strings.Join(tabs, "|"), width, "…")
}

// renderStatusBar renders the bottom two lines: the command line (or its
// idle placeholder) and the mode/status line.
func renderStatusBar(m *model.Model, width int) string {
	var cmdLine string
	if m.Mode == model.ModeCommand {
		cmdLine = m.CommandInput.View()
	} else {
		cmdLine = SubtleStyle.Render(": for commands, ? for help")
	}

	var mode string
	switch m.Mode {
	case model.ModeInsert:
		mode = ModeInsertStyle.Render("INSERT")
	case model.ModeCommand:
		mode = ModeCommandStyle.Render("COMMAND")
	default:
		mode = ModeNormalStyle.Render("NORMAL")
	}

	status := m.StatusMsg
	if m.BufStats.Evicted > 0 && m.Screen == model.ScreenConsumer {
		status += SubtleStyle.Render(fmt.Sprintf("  (evicted %d)", m.BufStats.Evicted))
	}

	statusLine := mode + " " + runewidth.Truncate(status, width-10, "…")
	return runewidth.Truncate(cmdLine, width, "…") + "\n" + statusLine
}
