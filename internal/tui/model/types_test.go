package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kafeye/internal/config"
	"kafeye/internal/kafka"
)

func TestScreenCycle(t *testing.T) {
	// Tabbing through every screen returns to the start.
	s := ScreenDashboard
	for i := 0; i < int(screenCount); i++ {
		s = s.Next()
	}
	assert.Equal(t, ScreenDashboard, s)

	assert.Equal(t, ScreenSettings, ScreenDashboard.Prev())
	assert.Equal(t, ScreenDashboard, ScreenSettings.Next())
}

func TestScreenEditable(t *testing.T) {
	assert.True(t, ScreenProducer.Editable())
	assert.True(t, ScreenTopics.Editable())
	assert.False(t, ScreenDashboard.Editable())
	assert.False(t, ScreenConsumer.Editable())
}

func TestScreenByName(t *testing.T) {
	s, ok := ScreenByName("monitor")
	assert.True(t, ok)
	assert.Equal(t, ScreenMonitor, s)

	_, ok = ScreenByName("bogus")
	assert.False(t, ok)
}

func TestNavClamp(t *testing.T) {
	tests := []struct {
		name         string
		nav          NavState
		listLen      int
		visible      int
		wantSelected int
		wantScroll   int
	}{
		{"empty list resets", NavState{Selected: 5, Scroll: 3}, 0, 10, 0, 0},
		{"selection past end clamps", NavState{Selected: 9, Scroll: 0}, 4, 10, 3, 0},
		{"selection inside window keeps scroll", NavState{Selected: 2, Scroll: 1}, 10, 5, 2, 1},
		{"selection above window pulls scroll up", NavState{Selected: 1, Scroll: 4}, 10, 5, 1, 1},
		{"selection below window pushes scroll down", NavState{Selected: 9, Scroll: 0}, 10, 5, 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := tt.nav
			nav.Clamp(tt.listLen, tt.visible)
			assert.Equal(t, tt.wantSelected, nav.Selected)
			assert.Equal(t, tt.wantScroll, nav.Scroll)
		})
	}
}

func TestClampAfterEviction(t *testing.T) {
	m := newTestModel()
	m.Screen = ScreenConsumer
	m.Messages = []kafka.Message{{Value: "a"}, {Value: "b"}, {Value: "c"}}
	m.CurrentNav().Selected = 2

	// A refresh shrinks the list; the cursor must follow.
	m.Messages = m.Messages[:1]
	m.ClampNav()

	assert.Equal(t, 0, m.CurrentNav().Selected)
}

func TestFilteredTopics(t *testing.T) {
	m := newTestModel()
	m.Topics = []kafka.TopicInfo{
		{Name: "orders"},
		{Name: "order-retries"},
		{Name: "payments"},
	}

	m.TopicFilter = "ord"
	names := topicNames(m.FilteredTopics())
	assert.Equal(t, []string{"orders", "order-retries"}, names)

	m.TopicFilter = ""
	assert.Len(t, m.FilteredTopics(), 3)

	m.TopicFilter = "zzz"
	assert.Empty(t, m.FilteredTopics())
}

func TestNavStatePersistsAcrossScreens(t *testing.T) {
	m := newTestModel()
	m.Screen = ScreenTopics
	m.Topics = []kafka.TopicInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	m.CurrentNav().Selected = 2

	m.Screen = ScreenGroups
	assert.Equal(t, 0, m.CurrentNav().Selected)

	m.Screen = ScreenTopics
	assert.Equal(t, 2, m.CurrentNav().Selected)
}

func newTestModel() *Model {
	cfg := config.GetDefaultConfig()
	coord := kafka.NewCoordinator(cfg.Kafka, cfg.UI.MaxMessages, func(config.KafkaConfig, []string) (kafka.Client, error) {
		return nil, nil
	})
	m := InitializeModel(cfg, coord, nil, false)
	m.Width = 80
	m.Height = 24
	return m
}

func topicNames(topics []kafka.TopicInfo) []string {
	var names []string
	for _, t := range topics {
		names = append(names, t.Name)
	}
	return names
}
