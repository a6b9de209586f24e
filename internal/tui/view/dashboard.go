package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kafeye/internal/tui/model"
)

func renderDashboard(m *model.Model) string {
	cluster := TitleStyle.Render("Cluster") + "\n" +
		fmt.Sprintf("topics      %d\n", m.Stats.Topics) +
		fmt.Sprintf("partitions  %d\n", m.Stats.Partitions) +
		fmt.Sprintf("groups      %d", m.Stats.Groups)

	rates := TitleStyle.Render("Throughput") + "\n" +
		fmt.Sprintf("messages/s  %.1f\n", m.Stats.MessagesPerSec) +
		fmt.Sprintf("bytes/s     %s", humanBytes(m.Stats.BytesPerSec))

	buffer := TitleStyle.Render("Consume buffer") + "\n" +
		fmt.Sprintf("held        %d / %d\n", len(m.Messages), m.Cfg.UI.MaxMessages) +
		fmt.Sprintf("pushed      %d\n", m.BufStats.Pushed) +
		fmt.Sprintf("evicted     %d", m.BufStats.Evicted)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(cluster),
		PanelStyle.Render(rates),
		PanelStyle.Render(buffer),
	)

	if m.Conn != model.ConnConnected {
		hint := "Not connected. :connect " + strings.Join(m.Cfg.Kafka.Brokers, ",")
		return panels + "\n\n" + SubtleStyle.Render(hint)
	}
	return panels
}

func humanBytes(v float64) string {
	switch {
	case v >= 1<<20:
		return fmt.Sprintf("%.1f MiB", v/(1<<20))
	case v >= 1<<10:
		return fmt.Sprintf("%.1f KiB", v/(1<<10))
	default:
		return fmt.Sprintf("%.0f B", v)
	}
}
