package view

import (
	"fmt"
	"sort"
	"strings"

	"kafeye/internal/tui/model"
)

func renderConsumer(m *model.Model, height int) string {
	if m.ConsumeTopic == "" {
		return SubtleStyle.Render("No consume stream. Use :consume <topic> or press enter on a topic.")
	}

	head := HeaderRow.Render("  " + cell("P@OFFSET", 14) + cell("TIME", 10) + cell("KEY", 16) + cell("VALUE", 60))

	rows := make([]string, len(m.Messages))
	for i, msg := range m.Messages {
		rows[i] = cell(fmt.Sprintf("%d@%d", msg.Partition, msg.Offset), 14) +
			cell(msg.Timestamp.Format("15:04:05"), 10) +
			cell(msg.Key, 16) +
			cell(strings.ReplaceAll(msg.Value, "\n", "␤"), 60)
	}

	detailHeight := 4
	body := renderRows(rows, m.CurrentNav(), height-3-detailHeight)
	return head + "\n" + body + "\n" + renderMessageDetail(m)
}

// renderMessageDetail shows the full payload and headers of the selection.
func renderMessageDetail(m *model.Model) string {
	sel := m.CurrentNav().Selected
	if sel >= len(m.Messages) {
		return ""
	}
	msg := m.Messages[sel]

	var hdr string
	if len(msg.Headers) > 0 {
		keys := make([]string, 0, len(msg.Headers))
		for k := range msg.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + msg.Headers[k]
		}
		hdr = "\n" + SubtleStyle.Render("headers: "+strings.Join(pairs, " "))
	}

	title := SubtleStyle.Render(fmt.Sprintf("%s/%d@%d", msg.Topic, msg.Partition, msg.Offset))
	return PanelStyle.Render(title + "\n" + msg.Value + hdr)
}
