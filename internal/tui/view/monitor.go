package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"kafeye/internal/tui/model"
)

// sparkRunes maps a normalized sample to a bar glyph, lowest to highest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func renderMonitor(m *model.Model, height int) string {
	current := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(TitleStyle.Render("messages/s")+"\n"+fmt.Sprintf("%.1f", m.Stats.MessagesPerSec)),
		PanelStyle.Render(TitleStyle.Render("bytes/s")+"\n"+humanBytes(m.Stats.BytesPerSec)),
	)

	width := m.Width - 8
	if width < 10 {
		width = 10
	}
	msgSpark := sparkline(seriesFor(m, "messages/s"), width)
	byteSpark := sparkline(seriesFor(m, "bytes/s"), width)

	history := PanelStyle.Render(
		SubtleStyle.Render("messages/s ") + "\n" + msgSpark + "\n" +
			SubtleStyle.Render("bytes/s") + "\n" + byteSpark)

	return current + "\n" + history + "\n" +
		SubtleStyle.Render(fmt.Sprintf("%d samples buffered", len(m.Samples)))
}

func seriesFor(m *model.Model, subject string) []float64 {
	var out []float64
	for _, s := range m.Samples {
		if s.Subject == subject {
			out = append(out, s.Value)
		}
	}
	return out
}

// sparkline draws the most recent width values as a one-line bar chart,
// scaled to the window maximum.
func sparkline(series []float64, width int) string {
	if len(series) == 0 {
		return SubtleStyle.Render("(no samples yet)")
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}
	var peak float64
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	out := make([]rune, len(series))
	for i, v := range series {
		idx := 0
		if peak > 0 {
			idx = int(v / peak * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return InfoStyle.Render(string(out))
}
