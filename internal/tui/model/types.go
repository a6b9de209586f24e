package model

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"kafeye/internal/config"
	"kafeye/internal/kafka"
	"kafeye/internal/ring"
	"kafeye/pkg/logging"
)

// Mode is the vim-style input mode. Exactly one is active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// Screen identifies one of the dashboard screens. Exactly one is active.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenTopics
	ScreenProducer
	ScreenConsumer
	ScreenGroups
	ScreenMonitor
	ScreenSettings

	screenCount
)

func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenTopics:
		return "Topics"
	case ScreenProducer:
		return "Producer"
	case ScreenConsumer:
		return "Consumer"
	case ScreenGroups:
		return "Groups"
	case ScreenMonitor:
		return "Monitor"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Next returns the screen after s, wrapping around.
func (s Screen) Next() Screen {
	return (s + 1) % screenCount
}

// Prev returns the screen before s, wrapping around.
func (s Screen) Prev() Screen {
	return (s + screenCount - 1) % screenCount
}

// Editable reports whether the screen declares an editable field, i.e.
// whether insert mode may be entered on it.
func (s Screen) Editable() bool {
	return s == ScreenProducer || s == ScreenTopics
}

// ScreenByName resolves a command verb to a screen.
func ScreenByName(name string) (Screen, bool) {
	switch name {
	case "dashboard":
		return ScreenDashboard, true
	case "topics":
		return ScreenTopics, true
	case "producer":
		return ScreenProducer, true
	case "consumer":
		return ScreenConsumer, true
	case "groups":
		return ScreenGroups, true
	case "monitor":
		return ScreenMonitor, true
	case "settings":
		return ScreenSettings, true
	}
	return ScreenDashboard, false
}

// AllScreens returns every screen, in tab order.
func AllScreens() []Screen {
	screens := make([]Screen, 0, screenCount)
	for s := Screen(0); s < screenCount; s++ {
		screens = append(screens, s)
	}
	return screens
}

// NavState is the per-screen cursor and scroll position. It persists
// across screen switches.
type NavState struct {
	Selected int
	Scroll   int
}

// Clamp keeps the cursor inside the current list and the cursor inside the
// visible window. Called after every list update so the selection never
// dangles past an eviction or refresh.
func (n *NavState) Clamp(listLen, visible int) {
	if listLen == 0 {
		n.Selected = 0
		n.Scroll = 0
		return
	}
	if n.Selected >= listLen {
		n.Selected = listLen - 1
	}
	if n.Selected < 0 {
		n.Selected = 0
	}
	if visible < 1 {
		visible = 1
	}
	if n.Selected < n.Scroll {
		n.Scroll = n.Selected
	} else if n.Selected >= n.Scroll+visible {
		n.Scroll = n.Selected - visible + 1
	}
	if n.Scroll < 0 {
		n.Scroll = 0
	}
}

// ConnectionState tracks the broker connection lifecycle. Transitions are
// driven only by data-plane events, never by input handling (the one
// exception is the optimistic Disconnected->Connecting step on dispatch).
type ConnectionState int

const (
	ConnDisconnected ConnectionState = iota
	ConnConnecting
	ConnConnected
	ConnError
)

func (c ConnectionState) String() string {
	switch c {
	case ConnDisconnected:
		return "Disconnected"
	case ConnConnecting:
		return "Connecting"
	case ConnConnected:
		return "Connected"
	case ConnError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Model is the single authoritative application state. It is owned and
// mutated exclusively by the Bubble Tea update loop.
type Model struct {
	Cfg         config.Config
	Coordinator *kafka.Coordinator
	LogCh       <-chan logging.LogEntry

	Mode   Mode
	Screen Screen
	Nav    map[Screen]*NavState

	CommandInput  textinput.Model
	ProducerInput textinput.Model
	FilterInput   textinput.Model

	// Pending leading key of a multi-key sequence ("gg"), with the time
	// it was pressed. Expired or unmatched pendings are no-ops.
	PendingKey string
	PendingAt  time.Time

	Conn        ConnectionState
	Brokers     []string
	ConnErr     string
	StatusMsg   string
	ErrorBanner string

	// Render-ready snapshots, refreshed from the data plane at each tick
	// or on arrival of the corresponding event.
	Topics   []kafka.TopicInfo
	Groups   []kafka.GroupSnapshot
	Messages []kafka.Message
	Samples  []kafka.MetricSample
	Stats    kafka.ClusterStats
	BufStats ring.Stats

	TopicFilter  string
	ConsumeTopic string
	ProduceTopic string

	Spin     spinner.Model
	ShowHelp bool
	ShowLog  bool
	LogTail  []logging.LogEntry

	Width  int
	Height int

	DebugMode bool
	Quitting  bool
}

// CurrentNav returns the navigation state of the active screen.
func (m *Model) CurrentNav() *NavState {
	return m.Nav[m.Screen]
}

// VisibleRows is the number of list rows the active screen can show.
func (m *Model) VisibleRows() int {
	// Header, tab bar, status bar and borders eat a fixed number of rows.
	rows := m.Height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ListLen returns the length of the active screen's list-like data. Screens
// without list data report zero.
func (m *Model) ListLen() int {
	switch m.Screen {
	case ScreenTopics:
		return len(m.FilteredTopics())
	case ScreenConsumer, ScreenProducer:
		return len(m.Messages)
	case ScreenGroups:
		return len(m.Groups)
	case ScreenMonitor:
		return len(m.Samples)
	default:
		return 0
	}
}

// FilteredTopics applies the fuzzy topic filter to the latest listing.
func (m *Model) FilteredTopics() []kafka.TopicInfo {
	filter := strings.TrimSpace(m.TopicFilter)
	if filter == "" {
		return m.Topics
	}
	var out []kafka.TopicInfo
	for _, t := range m.Topics {
		if fuzzy.MatchFold(filter, t.Name) {
			out = append(out, t)
		}
	}
	return out
}

// ClampNav re-clamps the active screen's cursor against its current list.
func (m *Model) ClampNav() {
	m.CurrentNav().Clamp(m.ListLen(), m.VisibleRows())
}
