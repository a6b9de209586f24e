package controller

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kafeye/internal/config"
	"kafeye/internal/kafka"
	"kafeye/internal/tui/model"
)

// stubClient satisfies kafka.Client with canned data so controller tests
// can drive the coordinator without a broker.
type stubClient struct {
	topics []kafka.TopicInfo
}

func (s *stubClient) Ping(context.Context) error { return nil }

func (s *stubClient) ListTopics(context.Context) ([]kafka.TopicInfo, error) {
	return s.topics, nil
}

func (s *stubClient) Totals(context.Context) (kafka.Totals, error) {
	return kafka.Totals{Topics: len(s.topics)}, nil
}

func (s *stubClient) Produce(_ context.Context, topic, _, _ string) (kafka.ProduceResult, error) {
	return kafka.ProduceResult{Topic: topic, Partition: 0, Offset: 42}, nil
}

func (s *stubClient) Consume(ctx context.Context, _ string, _ func(kafka.Message)) error {
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubClient) DescribeGroups(context.Context) ([]kafka.GroupSnapshot, error) {
	return nil, nil
}

func (s *stubClient) Close() {}

func newTestModel(t *testing.T) *model.Model {
	t.Helper()

	cfg := config.GetDefaultConfig()
	dial := func(config.KafkaConfig, []string) (kafka.Client, error) {
		return &stubClient{}, nil
	}
	coord := kafka.NewCoordinator(cfg.Kafka, cfg.UI.MaxMessages, dial)
	t.Cleanup(coord.Close)

	m := model.InitializeModel(cfg, coord, nil, false)
	m.Width = 80
	m.Height = 24
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeString(t *testing.T, m *model.Model, s string) *model.Model {
	t.Helper()
	for _, r := range s {
		m, _ = Update(keyMsg(string(r)), m)
	}
	return m
}

// Every (screen, key) combination must leave the model in a defined state.
func TestNormalKeysNeverCorruptState(t *testing.T) {
	inputs := []string{
		"j", "k", "g", "G", "h", "l", "x", "Z", "enter", "tab",
		"shift+tab", "ctrl+u", "ctrl+d", "r", "y", "L", "?", "/",
	}

	m := newTestModel(t)
	m.Topics = []kafka.TopicInfo{{Name: "orders"}, {Name: "events"}}
	m.Messages = []kafka.Message{{Topic: "orders", Value: "a"}}

	for range model.AllScreens() {
		for _, in := range inputs {
			m, _ = Update(keyMsg(in), m)
			// Recover from anything that opened another mode so the
			// sweep stays in normal mode.
			m, _ = Update(keyMsg("esc"), m)
			m.Mode = model.ModeNormal

			assert.GreaterOrEqual(t, int(m.Screen), 0)
			assert.Less(t, int(m.Screen), len(model.AllScreens()))
			nav := m.CurrentNav()
			require.NotNil(t, nav)
			assert.GreaterOrEqual(t, nav.Selected, 0)
		}
		m, _ = Update(keyMsg("tab"), m)
	}
}

func TestGGJumpsToTop(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics
	m.Topics = []kafka.TopicInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	m.CurrentNav().Selected = 2

	m, _ = Update(keyMsg("g"), m)
	assert.Equal(t, 2, m.CurrentNav().Selected, "first g alone must not move")
	m, _ = Update(keyMsg("g"), m)
	assert.Equal(t, 0, m.CurrentNav().Selected)
	assert.Equal(t, 0, m.CurrentNav().Scroll)
}

func TestPendingGExpires(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics
	m.Topics = []kafka.TopicInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	m.CurrentNav().Selected = 2

	m, _ = Update(keyMsg("g"), m)
	m.PendingAt = time.Now().Add(-time.Second)
	m, _ = Update(keyMsg("g"), m)

	// The stale pair did not fire; the second g opened a new pending.
	assert.Equal(t, 2, m.CurrentNav().Selected)
	assert.Equal(t, "g", m.PendingKey)
}

func TestPendingGUnmatchedKeyFallsThrough(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics
	m.Topics = []kafka.TopicInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	m, _ = Update(keyMsg("g"), m)
	m, _ = Update(keyMsg("j"), m)

	assert.Empty(t, m.PendingKey)
	assert.Equal(t, 1, m.CurrentNav().Selected, "the j must act on its own")
}

func TestTabCyclesThroughAllScreens(t *testing.T) {
	m := newTestModel(t)
	start := m.Screen
	for range model.AllScreens() {
		m, _ = Update(keyMsg("tab"), m)
	}
	assert.Equal(t, start, m.Screen)

	m, _ = Update(keyMsg("shift+tab"), m)
	assert.Equal(t, model.ScreenSettings, m.Screen)
}

func TestNumberKeysJumpToScreen(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(keyMsg("5"), m)
	assert.Equal(t, model.ScreenGroups, m.Screen)

	m, _ = Update(keyMsg("1"), m)
	assert.Equal(t, model.ScreenDashboard, m.Screen)
}

func TestColonEntersCommandMode(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	assert.Equal(t, model.ModeCommand, m.Mode)
	assert.Empty(t, m.CommandInput.Value())
}

func TestCommandEscCancels(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "topics")
	m, _ = Update(keyMsg("esc"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Equal(t, model.ScreenDashboard, m.Screen, "cancelled command must not dispatch")
	assert.Empty(t, m.CommandInput.Value())
}

func TestCommandSwitchScreen(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "groups")
	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Equal(t, model.ScreenGroups, m.Screen)

	// The bare screen verbs work for the producer and consumer screens
	// too, without touching the produce target or consume stream.
	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "consumer")
	m, _ = Update(keyMsg("enter"), m)
	assert.Equal(t, model.ScreenConsumer, m.Screen)
	assert.Empty(t, m.ConsumeTopic)

	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "producer")
	m, _ = Update(keyMsg("enter"), m)
	assert.Equal(t, model.ScreenProducer, m.Screen)
	assert.Empty(t, m.ProduceTopic)
}

func TestCommandConsumeSwitchesTopicAndScreen(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics

	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "consume topicB")
	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ScreenConsumer, m.Screen)
	assert.Equal(t, "topicB", m.ConsumeTopic)
	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Empty(t, m.Messages, "stale rows from the previous topic must be gone")
	assert.Equal(t, 0, m.Nav[model.ScreenConsumer].Selected)
}

func TestCommandUnknownVerbShowsError(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "frobnicate")
	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Equal(t, model.ScreenDashboard, m.Screen, "a failed command must not change state")
	assert.Contains(t, m.StatusMsg, "frobnicate")
}

func TestCommandMissingArgumentShowsError(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "produce")
	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Contains(t, m.StatusMsg, "produce")
	assert.Empty(t, m.ProduceTopic)
}

func TestCommandConnectGoesOptimisticallyConnecting(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "connect broker1:9092,broker2:9092")
	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ConnConnecting, m.Conn)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, m.Brokers)
}

func TestConnectedEventCompletesTheFlow(t *testing.T) {
	m := newTestModel(t)
	m.Conn = model.ConnConnecting
	m.ErrorBanner = "stale"

	m, cmd := handleDataPlane(m, kafka.ConnectedEvent{Brokers: []string{"b:9092"}})

	assert.Equal(t, model.ConnConnected, m.Conn)
	assert.Equal(t, []string{"b:9092"}, m.Brokers)
	assert.Empty(t, m.ErrorBanner)
	assert.NotNil(t, cmd, "the data-plane listener must be re-armed")
}

func TestConnectionErrorEventEntersErrorState(t *testing.T) {
	m := newTestModel(t)
	m.Conn = model.ConnConnecting

	m, _ = handleDataPlane(m, kafka.ConnectionErrorEvent{Err: context.DeadlineExceeded})

	assert.Equal(t, model.ConnError, m.Conn)
	assert.Equal(t, context.DeadlineExceeded.Error(), m.ConnErr)
	assert.Contains(t, m.ErrorBanner, "connection failed")
}

func TestStatusCommandReportsConnectionError(t *testing.T) {
	m := newTestModel(t)
	m.Conn = model.ConnError
	m.ConnErr = "dial tcp: refused"

	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "status")
	m, _ = Update(keyMsg("enter"), m)

	assert.Contains(t, m.StatusMsg, "connection error: dial tcp: refused")
}

func TestConnectFromErrorStateResets(t *testing.T) {
	m := newTestModel(t)
	m.Conn = model.ConnError
	m.ConnErr = "dial tcp: refused"

	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "connect broker1:9092")
	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ConnConnecting, m.Conn)
	assert.Empty(t, m.ConnErr)
}

func TestTopicsEventClampsSelection(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics
	m.Topics = []kafka.TopicInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	m.CurrentNav().Selected = 2

	m, _ = handleDataPlane(m, kafka.TopicsEvent{Topics: []kafka.TopicInfo{{Name: "a"}}})

	assert.Equal(t, 0, m.CurrentNav().Selected)
}

func TestInsertOnProducerEditsPayload(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenProducer
	m.ProduceTopic = "orders"

	m, _ = Update(keyMsg("i"), m)
	require.Equal(t, model.ModeInsert, m.Mode)

	m = typeString(t, m, "hello")
	assert.Equal(t, "hello", m.ProducerInput.Value())

	m, _ = Update(keyMsg("enter"), m)
	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Empty(t, m.ProducerInput.Value(), "payload is consumed on submit")
}

func TestInsertEscDiscardsPayload(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenProducer
	m.ProduceTopic = "orders"

	m, _ = Update(keyMsg("i"), m)
	m = typeString(t, m, "half-typed")
	m, _ = Update(keyMsg("esc"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Empty(t, m.ProducerInput.Value())
}

func TestInsertOnNonEditableScreenIsRefused(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenGroups

	m, _ = Update(keyMsg("i"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Contains(t, m.StatusMsg, "Groups")
}

func TestFilterNarrowsTopicsLive(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics
	m.Topics = []kafka.TopicInfo{
		{Name: "orders"}, {Name: "payments"}, {Name: "order-errors"},
	}

	m, _ = Update(keyMsg("/"), m)
	require.Equal(t, model.ModeInsert, m.Mode)

	m = typeString(t, m, "ord")
	assert.Len(t, m.FilteredTopics(), 2)

	m, _ = Update(keyMsg("enter"), m)
	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Equal(t, "ord", m.TopicFilter, "committed filter stays applied")
}

func TestFilterOffTopicsScreenIsHintOnly(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenMonitor

	m, _ = Update(keyMsg("/"), m)

	assert.Equal(t, model.ModeNormal, m.Mode)
	assert.Contains(t, m.StatusMsg, "Topics")
}

func TestEnterOnTopicsStartsConsume(t *testing.T) {
	m := newTestModel(t)
	m.Screen = model.ScreenTopics
	m.Topics = []kafka.TopicInfo{{Name: "orders"}, {Name: "payments"}}
	m.CurrentNav().Selected = 1

	m, _ = Update(keyMsg("enter"), m)

	assert.Equal(t, model.ScreenConsumer, m.Screen)
	assert.Equal(t, "payments", m.ConsumeTopic)
}

func TestStatusCommandSummarizes(t *testing.T) {
	m := newTestModel(t)
	m.Conn = model.ConnConnected
	m.Brokers = []string{"b:9092"}

	m, _ = Update(keyMsg(":"), m)
	m = typeString(t, m, "status")
	m, _ = Update(keyMsg("enter"), m)

	assert.Contains(t, m.StatusMsg, "connected to b:9092")
}

func TestTickSnapshotsRingIntoModel(t *testing.T) {
	m := newTestModel(t)
	m.Coordinator.Messages().Push(kafka.Message{Topic: "t", Value: "v1"})
	m.Coordinator.Messages().Push(kafka.Message{Topic: "t", Value: "v2"})

	m, cmd := Update(model.TickMsg(time.Now()), m)

	require.Len(t, m.Messages, 2)
	assert.Equal(t, "v1", m.Messages[0].Value)
	assert.Equal(t, uint64(2), m.BufStats.Pushed)
	assert.NotNil(t, cmd, "the tick must re-arm itself")
}

func TestLogOverlayTailIsBounded(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < logTailSize+25; i++ {
		m, _ = Update(model.NewLogEntryMsg{}, m)
	}
	assert.Len(t, m.LogTail, logTailSize)
}
