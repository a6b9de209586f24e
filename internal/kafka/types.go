// Package kafka owns everything that talks to the broker cluster: the
// franz-go backed client, the record types that flow out of it, and the
// coordinator that runs produce/consume/poll work on background goroutines
// and hands results to the TUI over channels and ring buffers.
package kafka

import "time"

// Message is one consumed record. Immutable once created.
type Message struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       string
	Value     string
	Timestamp time.Time
	Headers   map[string]string
}

// MetricSample is one point of a monitored series, e.g. "messages/s".
type MetricSample struct {
	Subject   string
	Value     float64
	Timestamp time.Time
}

// TopicInfo summarizes one topic's metadata.
type TopicInfo struct {
	Name       string
	Partitions int
	Replicas   int
}

// TopicPartition addresses a single partition.
type TopicPartition struct {
	Topic     string
	Partition int32
}

// GroupMember is one member of a consumer group.
type GroupMember struct {
	ID          string
	ClientID    string
	Host        string
	Assignments []TopicPartition
}

// GroupSnapshot is the observed state of one consumer group at one instant.
// Lag is keyed by "topic/partition".
type GroupSnapshot struct {
	Group     string
	State     string
	Protocol  string
	Members   []GroupMember
	Lag       map[string]int64
	Timestamp time.Time
}

// ClusterStats are the dashboard/monitor totals derived by the metrics
// poller. Rates are computed from deltas between consecutive polls.
type ClusterStats struct {
	Topics         int
	Partitions     int
	Groups         int
	MessagesPerSec float64
	BytesPerSec    float64
}

// ProduceResult reports where a produced record landed.
type ProduceResult struct {
	Topic     string
	Partition int32
	Offset    int64
}

// Totals is the raw material for ClusterStats, fetched in one admin round.
type Totals struct {
	Topics       int
	Partitions   int
	Groups       int
	EndOffsetSum int64
}
