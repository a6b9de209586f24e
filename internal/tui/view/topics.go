package view

import (
	"fmt"

	"kafeye/internal/tui/model"
)

func renderTopics(m *model.Model, height int) string {
	topics := m.FilteredTopics()

	head := HeaderRow.Render("  " + cell("TOPIC", 40) + cell("PARTITIONS", 12) + cell("REPLICAS", 10))

	rows := make([]string, len(topics))
	for i, t := range topics {
		rows[i] = cell(t.Name, 40) +
			cell(fmt.Sprintf("%d", t.Partitions), 12) +
			cell(fmt.Sprintf("%d", t.Replicas), 10)
	}

	var filterLine string
	if m.Mode == model.ModeInsert && m.Screen == model.ScreenTopics {
		filterLine = m.FilterInput.View() + "\n"
	} else if m.TopicFilter != "" {
		filterLine = SubtleStyle.Render(fmt.Sprintf("filter: %s (%d/%d)", m.TopicFilter, len(topics), len(m.Topics))) + "\n"
	}

	body := renderRows(rows, m.CurrentNav(), height-3)
	return filterLine + head + "\n" + body + "\n" +
		SubtleStyle.Render("enter: consume selected   /: filter   r: refresh")
}
