package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/tui/model"
	"kafeye/internal/tui/view"
)

// AppModel wraps the model to satisfy tea.Model.
type AppModel struct {
	model *model.Model
}

// NewAppModel creates the app wrapper.
func NewAppModel(m *model.Model) AppModel {
	return AppModel{model: m}
}

// Init implements tea.Model.
func (a AppModel) Init() tea.Cmd {
	return a.model.Init()
}

// Update implements tea.Model.
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		a.model.ClampNav()
		return a, nil
	}

	updated, cmd := Update(msg, a.model)
	a.model = updated
	return a, cmd
}

// View implements tea.Model.
func (a AppModel) View() string {
	return view.Render(a.model)
}
