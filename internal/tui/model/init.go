package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/config"
	"kafeye/internal/kafka"
	"kafeye/pkg/logging"
)

// InitializeModel builds the application state from validated
// configuration. The model starts disconnected; the user connects with
// `:connect` or the startup hint's suggestion.
func InitializeModel(cfg config.Config, coord *kafka.Coordinator, logCh <-chan logging.LogEntry, debug bool) *Model {
	commandInput := textinput.New()
	commandInput.Prompt = ":"
	commandInput.CharLimit = 256

	producerInput := textinput.New()
	producerInput.Prompt = "> "
	producerInput.Placeholder = "payload, or key:payload"
	producerInput.CharLimit = 4096

	filterInput := textinput.New()
	filterInput.Prompt = "/"
	filterInput.Placeholder = "filter topics"
	filterInput.CharLimit = 128

	nav := make(map[Screen]*NavState, screenCount)
	for _, s := range AllScreens() {
		nav[s] = &NavState{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		Cfg:           cfg,
		Coordinator:   coord,
		LogCh:         logCh,
		Mode:          ModeNormal,
		Screen:        ScreenDashboard,
		Nav:           nav,
		CommandInput:  commandInput,
		ProducerInput: producerInput,
		FilterInput:   filterInput,
		Conn:          ConnDisconnected,
		StatusMsg:     "Not connected. Use :connect " + strings.Join(cfg.Kafka.Brokers, ","),
		Spin:          sp,
		DebugMode:     debug,
	}
}

// Init implements the Bubble Tea entry point: it arms the render tick, the
// data-plane listener and the log listener.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.Spin.Tick,
		Tick(m.RefreshInterval()),
		WaitForDataPlane(m.Coordinator.Events()),
	}
	if cmd := ListenForLogs(m.LogCh); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}
