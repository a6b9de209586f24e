package view

import (
	"fmt"

	"kafeye/internal/tui/model"
)

func renderGroups(m *model.Model, height int) string {
	head := HeaderRow.Render("  " + cell("GROUP", 32) + cell("STATE", 18) + cell("MEMBERS", 9) + cell("LAG", 12))

	rows := make([]string, len(m.Groups))
	for i, g := range m.Groups {
		rows[i] = cell(g.Group, 32) +
			cell(g.State, 18) +
			cell(fmt.Sprintf("%d", len(g.Members)), 9) +
			cell(fmt.Sprintf("%d", totalLag(g.Lag)), 12)
	}

	detailHeight := 4
	body := renderRows(rows, m.CurrentNav(), height-3-detailHeight)
	return head + "\n" + body + "\n" + renderGroupDetail(m)
}

func renderGroupDetail(m *model.Model) string {
	sel := m.CurrentNav().Selected
	if sel >= len(m.Groups) {
		return ""
	}
	g := m.Groups[sel]

	var members string
	for i, mem := range g.Members {
		if i >= 3 {
			members += SubtleStyle.Render(fmt.Sprintf("\n  ... and %d more", len(g.Members)-3))
			break
		}
		members += fmt.Sprintf("\n  %s (%s@%s) -> %v", mem.ID, mem.ClientID, mem.Host, mem.Assignments)
	}
	if members == "" {
		members = "\n  " + SubtleStyle.Render("(no members)")
	}

	title := SubtleStyle.Render(g.Group + " [" + g.Protocol + "]")
	return PanelStyle.Render(title + members)
}

func totalLag(lag map[string]int64) int64 {
	var sum int64
	for _, v := range lag {
		sum += v
	}
	return sum
}
