package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kafeye/internal/tui/model"
)

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	if m.Quitting {
		return SubtleStyle.Render("Shutting down...") + "\n"
	}
	if m.Width == 0 || m.Height == 0 {
		return SubtleStyle.Render("Initializing... (waiting for window size)")
	}

	var b strings.Builder
	b.WriteString(renderHeader(m, m.Width))
	b.WriteString("\n")
	b.WriteString(renderTabBar(m, m.Width))
	b.WriteString("\n")

	bodyHeight := m.Height - 5 // header, tabs, banner, status, command line
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.ShowHelp {
		body = renderHelpOverlay(m)
	} else if m.ShowLog {
		body = renderLogOverlay(m, bodyHeight)
	} else {
		body = renderScreen(m, bodyHeight)
	}
	b.WriteString(lipgloss.NewStyle().Height(bodyHeight).Render(body))
	b.WriteString("\n")

	b.WriteString(renderBannerLine(m, m.Width))
	b.WriteString("\n")
	b.WriteString(renderStatusBar(m, m.Width))
	return b.String()
}

func renderScreen(m *model.Model, height int) string {
	switch m.Screen {
	case model.ScreenDashboard:
		return renderDashboard(m)
	case model.ScreenTopics:
		return renderTopics(m, height)
	case model.ScreenProducer:
		return renderProducer(m)
	case model.ScreenConsumer:
		return renderConsumer(m, height)
	case model.ScreenGroups:
		return renderGroups(m, height)
	case model.ScreenMonitor:
		return renderMonitor(m, height)
	case model.ScreenSettings:
		return renderSettings(m)
	default:
		return ""
	}
}

// renderRows windows rows by the screen's scroll offset and highlights the
// selection. Rows outside the window are not rendered at all.
func renderRows(rows []string, nav *model.NavState, visible int) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("  (empty)")
	}
	if visible < 1 {
		visible = 1
	}
	end := nav.Scroll + visible
	if end > len(rows) {
		end = len(rows)
	}
	var b strings.Builder
	for i := nav.Scroll; i < end; i++ {
		if i == nav.Selected {
			b.WriteString(SelectedStyle.Render("> " + rows[i]))
		} else {
			b.WriteString("  " + rows[i])
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cell pads or truncates s to exactly width display columns.
func cell(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func renderBannerLine(m *model.Model, width int) string {
	if m.ErrorBanner != "" {
		return BannerStyle.Render(runewidth.Truncate("✗ "+m.ErrorBanner, width, "…"))
	}
	return ""
}

func renderHelpOverlay(m *model.Model) string {
	cols := [][]string{
		{
			"j/k       move",
			"gg / G    top / bottom",
			"ctrl+u/d  page",
			"tab       next screen",
			"shift+tab previous screen",
			"1-7       jump to screen",
		},
		{
			":         command line",
			"i         insert (edit field)",
			"/         filter topics",
			"enter     consume selected topic",
			"r         refresh",
		},
		{
			"y         yank payload",
			"L         log overlay",
			"?         close help",
			"q         quit",
		},
	}
	rendered := make([]string, len(cols))
	for i, col := range cols {
		rendered[i] = lipgloss.NewStyle().MarginRight(4).Render(strings.Join(col, "\n"))
	}
	content := TitleStyle.Render("Key bindings") + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n\n" +
		SubtleStyle.Render("commands: :dashboard :topics :producer :consumer :groups :monitor :settings\n"+
			"          :connect <brokers> :disconnect :produce <topic> :consume <topic> :status :q")
	return OverlayStyle.Render(content)
}

func renderLogOverlay(m *model.Model, height int) string {
	lines := make([]string, 0, len(m.LogTail))
	start := 0
	if keep := height - 3; keep > 0 && len(m.LogTail) > keep {
		start = len(m.LogTail) - keep
	}
	for _, e := range m.LogTail[start:] {
		level := e.Level.String()
		style := SubtleStyle
		switch level {
		case "WARN":
			style = WarningStyle
		case "ERROR":
			style = ErrorStyle
		}
		line := fmt.Sprintf("%s %s [%s] %s",
			e.Timestamp.Format("15:04:05"), style.Render(level), e.Subsystem, e.Message)
		if e.Err != nil {
			line += SubtleStyle.Render(" (" + e.Err.Error() + ")")
		}
		lines = append(lines, runewidth.Truncate(line, m.Width-6, "…"))
	}
	if len(lines) == 0 {
		lines = []string{SubtleStyle.Render("(no log entries)")}
	}
	return OverlayStyle.Render(TitleStyle.Render("Activity log") + "\n" + strings.Join(lines, "\n"))
}
