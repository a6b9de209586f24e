package view

import (
	"kafeye/internal/tui/model"
)

func renderProducer(m *model.Model) string {
	var target string
	if m.ProduceTopic != "" {
		target = TitleStyle.Render("Producing to ") + InfoStyle.Render(m.ProduceTopic)
	} else {
		target = WarningStyle.Render("No target topic. Use :produce <topic>")
	}

	input := m.ProducerInput.View()
	hint := SubtleStyle.Render("i: edit payload   enter: send   esc: discard\n" +
		"payload syntax: \"key:payload\" sets a record key, anything else is the payload")

	return PanelStyle.Render(target+"\n\n"+input) + "\n\n" + hint
}
