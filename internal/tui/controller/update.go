package controller

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"kafeye/internal/tui/model"
	"kafeye/pkg/logging"
)

const dispatchSubsystem = "Dispatch"

// logTailSize bounds the overlay's rolling tail.
const logTailSize = 200

var keys = DefaultKeyMap()

// Update is the central message router. All model mutation funnels through
// here, on the single Bubble Tea goroutine; data-plane goroutines only ever
// reach the model via DataPlaneMsg.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// ctrl+c quits from any mode.
		if msg.String() == "ctrl+c" {
			return quit(m)
		}
		switch m.Mode {
		case model.ModeInsert:
			return handleInsertKey(m, msg)
		case model.ModeCommand:
			return handleCommandKey(m, msg)
		default:
			return handleNormalKey(m, msg)
		}

	case model.TickMsg:
		return handleTick(m)

	case model.DataPlaneMsg:
		return handleDataPlane(m, msg.Event)

	case model.NewLogEntryMsg:
		m.LogTail = append(m.LogTail, msg.Entry)
		if len(m.LogTail) > logTailSize {
			m.LogTail = m.LogTail[len(m.LogTail)-logTailSize:]
		}
		return m, model.ListenForLogs(m.LogCh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spin, cmd = m.Spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleTick snapshots the ring buffers into render-ready slices, re-clamps
// the cursor, and re-arms the next tick. It never blocks on the data
// plane: with no new data the snapshot is simply unchanged.
func handleTick(m *model.Model) (*model.Model, tea.Cmd) {
	m.Messages = m.Coordinator.Messages().Snapshot()
	m.Samples = m.Coordinator.Samples().Snapshot()
	m.BufStats = m.Coordinator.Messages().GetStats()
	m.ClampNav()
	return m, model.Tick(m.RefreshInterval())
}

func quit(m *model.Model) (*model.Model, tea.Cmd) {
	m.Quitting = true
	logging.Info(dispatchSubsystem, "shutting down")
	m.Coordinator.Close()
	logging.CloseTUIChannel()
	return m, tea.Quit
}
