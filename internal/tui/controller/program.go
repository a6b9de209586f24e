package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/config"
	"kafeye/internal/kafka"
	"kafeye/internal/tui/model"
	"kafeye/pkg/logging"
)

// NewProgram assembles the model and returns a ready-to-run Bubble Tea
// program in alternate-screen mode.
func NewProgram(cfg config.Config, coord *kafka.Coordinator, logCh <-chan logging.LogEntry, debug bool) *tea.Program {
	m := model.InitializeModel(cfg, coord, logCh, debug)
	return tea.NewProgram(NewAppModel(m), tea.WithAltScreen())
}
