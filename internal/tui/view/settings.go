package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kafeye/internal/tui/model"
)

func renderSettings(m *model.Model) string {
	k := m.Cfg.Kafka

	security := "plaintext"
	if k.Security != nil {
		security = k.Security.Protocol
		if k.Security.SASL != nil {
			security += " / " + k.Security.SASL.Mechanism
		}
	}

	kafka := TitleStyle.Render("Kafka") + "\n" +
		setting("brokers", strings.Join(k.Brokers, ",")) +
		setting("client_id", k.ClientID) +
		setting("security", security) +
		setting("acks", k.Producer.Acks) +
		setting("compression", orDefault(k.Producer.CompressionType, "none")) +
		setting("group_id", k.Consumer.GroupID) +
		setting("offset_reset", k.Consumer.AutoOffsetReset)

	ui := TitleStyle.Render("UI") + "\n" +
		setting("theme", orDefault(m.Cfg.UI.Theme, "default")) +
		setting("refresh_interval_ms", fmt.Sprintf("%d", m.Cfg.UI.RefreshIntervalMs)) +
		setting("max_messages", fmt.Sprintf("%d", m.Cfg.UI.MaxMessages)) +
		setting("vim_mode", fmt.Sprintf("%t", m.Cfg.UI.VimModeEnabled()))

	logging := TitleStyle.Render("Logging") + "\n" +
		setting("level", orDefault(m.Cfg.Logging.Level, "info")) +
		setting("file", orDefault(m.Cfg.Logging.File, "(none)"))

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(kafka),
		PanelStyle.Render(ui+"\n\n"+logging),
	)
	return panels + "\n" + SubtleStyle.Render("configuration is read-only here; edit the config file and restart")
}

func setting(name, value string) string {
	return SubtleStyle.Render(cell(name, 22)) + value + "\n"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
