package kafka

// Event is what the coordinator publishes to the event loop. The TUI owns
// the only receiver; data-plane goroutines never mutate UI state directly.
type Event interface{ dataPlaneEvent() }

// ConnectedEvent resolves a connect request successfully.
type ConnectedEvent struct {
	Brokers []string
}

// ConnectionErrorEvent resolves a connect request with an error, or reports
// a connection lost mid-stream. Dependent streams are already halted when
// it is published.
type ConnectionErrorEvent struct {
	Err error
}

// DisconnectedEvent reports a clean disconnect.
type DisconnectedEvent struct{}

// TopicsEvent carries a fresh topic listing.
type TopicsEvent struct {
	Topics []TopicInfo
}

// GroupsEvent carries a fresh consumer-group poll result.
type GroupsEvent struct {
	Groups []GroupSnapshot
}

// StatsEvent carries refreshed cluster totals and rates.
type StatsEvent struct {
	Stats ClusterStats
}

// ConsumeStartedEvent confirms a consume stream is live for a topic.
type ConsumeStartedEvent struct {
	Topic string
}

// ProduceResultEvent resolves a produce one-shot: either Result or Err is
// set, never both.
type ProduceResultEvent struct {
	Result ProduceResult
	Err    error
}

// StreamErrorEvent surfaces a non-fatal stream failure after retries were
// exhausted; the stream keeps attempting on its next scheduled poll.
type StreamErrorEvent struct {
	Op  string
	Err error
}

func (ConnectedEvent) dataPlaneEvent()       {}
func (ConnectionErrorEvent) dataPlaneEvent() {}
func (DisconnectedEvent) dataPlaneEvent()    {}
func (TopicsEvent) dataPlaneEvent()          {}
func (GroupsEvent) dataPlaneEvent()          {}
func (StatsEvent) dataPlaneEvent()           {}
func (ConsumeStartedEvent) dataPlaneEvent()  {}
func (ProduceResultEvent) dataPlaneEvent()   {}
func (StreamErrorEvent) dataPlaneEvent()     {}
