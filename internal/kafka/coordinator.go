package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"kafeye/internal/config"
	"kafeye/internal/ring"
	"kafeye/pkg/logging"
)

const coordinatorSubsystem = "Coordinator"

// Poll cadence and retry policy. Vars so coordinator tests can tighten them.
var (
	opTimeout           = 10 * time.Second
	groupsPollInterval  = 5 * time.Second
	metricsPollInterval = 2 * time.Second
	retryBaseDelay      = 250 * time.Millisecond
	retryMaxDelay       = 4 * time.Second
	retryMaxAttempts    = 5
)

const (
	eventBufferSize = 256
	metricsRingSize = 360 // samples kept for the monitor screen
)

// ErrNotConnected is returned for broker operations issued before a
// successful connect.
var ErrNotConnected = errors.New("not connected to a cluster")

// Coordinator owns all broker-facing concurrent work. Each stream runs on
// its own goroutine and publishes back only through the ring buffers and
// the events channel; the TUI event loop is the sole consumer.
type Coordinator struct {
	cfg      config.KafkaConfig
	dial     Dialer
	events   chan Event
	messages *ring.Ring[Message]
	samples  *ring.Ring[MetricSample]

	mu      sync.Mutex
	client  Client
	streams map[string]*stream

	// connectMu serializes connect/disconnect attempts; connectGen marks
	// the latest request so a superseded attempt discards its result
	// instead of installing a stale client.
	connectMu  sync.Mutex
	connectGen atomic.Uint64

	consumeGen    atomic.Uint64
	consumeTopic  string
	bytesConsumed atomic.Uint64

	statsMu      sync.Mutex
	lastOffsets  int64
	lastBytes    uint64
	lastStatsAt  time.Time
	haveBaseline bool
}

type stream struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCoordinator creates a coordinator with ring buffers sized from the
// configured max_messages. dial defaults to the franz-go Dialer.
func NewCoordinator(cfg config.KafkaConfig, maxMessages int, dial Dialer) *Coordinator {
	if dial == nil {
		dial = Dial
	}
	return &Coordinator{
		cfg:      cfg,
		dial:     dial,
		events:   make(chan Event, eventBufferSize),
		messages: ring.New[Message](maxMessages),
		samples:  ring.New[MetricSample](metricsRingSize),
		streams:  make(map[string]*stream),
	}
}

// Events returns the channel the TUI drains for data-plane results.
func (c *Coordinator) Events() <-chan Event { return c.events }

// Messages returns the consume ring buffer. Readers take snapshots only.
func (c *Coordinator) Messages() *ring.Ring[Message] { return c.messages }

// Samples returns the monitor metric ring buffer.
func (c *Coordinator) Samples() *ring.Ring[MetricSample] { return c.samples }

// ConsumeTopic reports the topic of the live consume stream, if any.
func (c *Coordinator) ConsumeTopic() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumeTopic
}

// publish never blocks a data-plane goroutine: when the TUI falls behind
// and the buffer fills, the event is dropped and logged.
func (c *Coordinator) publish(ev Event) {
	select {
	case c.events <- ev:
	default:
		logging.Warn(coordinatorSubsystem, "event buffer full, dropping %T", ev)
	}
}

// Connect dials the given brokers asynchronously. Any prior connection and
// all streams bound to it are superseded first. The caller sees the result
// as a ConnectedEvent or ConnectionErrorEvent.
func (c *Coordinator) Connect(brokers []string) {
	gen := c.connectGen.Add(1)
	go func() {
		c.connectMu.Lock()
		defer c.connectMu.Unlock()
		// A newer connect or disconnect arrived while this one waited
		// its turn; it owns the connection now.
		if c.connectGen.Load() != gen {
			return
		}

		c.cancelAllStreams()

		c.mu.Lock()
		prev := c.client
		c.client = nil
		c.mu.Unlock()
		if prev != nil {
			prev.Close()
		}

		client, err := c.dial(c.cfg, brokers)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			err = client.Ping(ctx)
			cancel()
			if err != nil {
				client.Close()
			}
		}
		if err != nil {
			logging.Error(coordinatorSubsystem, err, "connect to %v failed", brokers)
			if c.connectGen.Load() == gen {
				c.publish(ConnectionErrorEvent{Err: err})
			}
			return
		}

		c.mu.Lock()
		if c.connectGen.Load() != gen {
			c.mu.Unlock()
			client.Close()
			return
		}
		prev = c.client
		c.client = client
		c.mu.Unlock()
		if prev != nil {
			prev.Close()
		}

		logging.Info(coordinatorSubsystem, "connected to %v", brokers)
		c.publish(ConnectedEvent{Brokers: brokers})

		c.RefreshTopics()
		c.startStream("groups", c.runGroupsPoller)
		c.startStream("metrics", c.runMetricsPoller)
	}()
}

// Disconnect cancels all streams and closes the client. It supersedes any
// in-flight connect attempt.
func (c *Coordinator) Disconnect() {
	c.connectGen.Add(1)
	go func() {
		c.connectMu.Lock()
		defer c.connectMu.Unlock()
		c.cancelAllStreams()
		c.mu.Lock()
		if c.client != nil {
			c.client.Close()
			c.client = nil
		}
		c.consumeTopic = ""
		c.mu.Unlock()
		c.publish(DisconnectedEvent{})
	}()
}

// RefreshTopics fetches the topic listing once, off the event loop.
func (c *Coordinator) RefreshTopics() {
	client := c.currentClient()
	if client == nil {
		c.publish(StreamErrorEvent{Op: "list-topics", Err: ErrNotConnected})
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		topics, err := client.ListTopics(ctx)
		if err != nil {
			c.publish(StreamErrorEvent{Op: "list-topics", Err: err})
			return
		}
		c.publish(TopicsEvent{Topics: topics})
	}()
}

// RefreshGroups runs one describe-groups round immediately, in addition to
// the background poller.
func (c *Coordinator) RefreshGroups() {
	client := c.currentClient()
	if client == nil {
		c.publish(StreamErrorEvent{Op: "describe-groups", Err: ErrNotConnected})
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		groups, err := client.DescribeGroups(ctx)
		if err != nil {
			c.publish(StreamErrorEvent{Op: "describe-groups", Err: err})
			return
		}
		c.publish(GroupsEvent{Groups: groups})
	}()
}

// Produce sends one record as a one-shot: exactly one ProduceResultEvent
// resolves it, success or error.
func (c *Coordinator) Produce(topic, key, value string) {
	client := c.currentClient()
	if client == nil {
		c.publish(ProduceResultEvent{Err: ErrNotConnected})
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		res, err := client.Produce(ctx, topic, key, value)
		if err != nil {
			c.publish(ProduceResultEvent{Err: err})
			return
		}
		c.publish(ProduceResultEvent{Result: res})
	}()
}

// StartConsume opens a consume stream for topic, superseding any previous
// stream. The superseded stream is cancelled and its late records are
// discarded, so the ring only ever holds the active topic's messages.
func (c *Coordinator) StartConsume(topic string) {
	client := c.currentClient()
	if client == nil {
		c.publish(StreamErrorEvent{Op: "consume", Err: ErrNotConnected})
		return
	}

	gen := c.consumeGen.Add(1)
	c.mu.Lock()
	c.consumeTopic = topic
	c.mu.Unlock()
	c.messages.Clear()

	c.startStream("consume", func(ctx context.Context) {
		c.publish(ConsumeStartedEvent{Topic: topic})
		emit := func(msg Message) {
			// A superseded stream must not leak records into the
			// buffer of the stream that replaced it.
			if c.consumeGen.Load() != gen {
				return
			}
			c.messages.Push(msg)
			c.bytesConsumed.Add(uint64(len(msg.Key) + len(msg.Value)))
		}
		for ctx.Err() == nil {
			err := c.withRetry(ctx, "consume "+topic, func(ctx context.Context) error {
				return client.Consume(ctx, topic, emit)
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				c.publish(StreamErrorEvent{Op: "consume " + topic, Err: err})
			}
			// Keep attempting on the next scheduled poll.
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryMaxDelay):
			}
		}
	})
}

// StopConsume cancels the live consume stream, if any.
func (c *Coordinator) StopConsume() {
	c.consumeGen.Add(1)
	c.stopStream("consume")
	c.mu.Lock()
	c.consumeTopic = ""
	c.mu.Unlock()
}

// Close shuts down all streams and the client. The events channel stays
// open; pending goroutines may still publish into its buffer.
func (c *Coordinator) Close() {
	// Invalidate any in-flight connect so it discards its client instead
	// of installing it after shutdown.
	c.connectGen.Add(1)
	c.cancelAllStreams()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

func (c *Coordinator) currentClient() Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client
}

// startStream replaces the named stream: the previous one is cancelled and
// awaited before run starts, but the wait happens on the new stream's
// goroutine so dispatch from the event loop never blocks on teardown.
func (c *Coordinator) startStream(name string, run func(context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &stream{cancel: cancel, done: make(chan struct{})}
	c.mu.Lock()
	prev := c.streams[name]
	c.streams[name] = s
	c.mu.Unlock()
	if prev != nil {
		prev.cancel()
	}

	go func() {
		defer close(s.done)
		if prev != nil {
			<-prev.done
		}
		run(ctx)
	}()
}

func (c *Coordinator) stopStream(name string) {
	c.mu.Lock()
	s := c.streams[name]
	delete(c.streams, name)
	c.mu.Unlock()
	if s != nil {
		s.cancel()
		<-s.done
	}
}

func (c *Coordinator) cancelAllStreams() {
	c.mu.Lock()
	streams := c.streams
	c.streams = make(map[string]*stream)
	c.mu.Unlock()
	for _, s := range streams {
		s.cancel()
	}
	for _, s := range streams {
		<-s.done
	}
}

// withRetry runs fn with bounded exponential backoff. Context cancellation
// aborts immediately; the last error is returned once attempts are
// exhausted.
func (c *Coordinator) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error
	delay := retryBaseDelay
	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil || ctx.Err() != nil {
			return lastErr
		}
		logging.Warn(coordinatorSubsystem, "%s failed (attempt %d/%d): %v", op, attempt, retryMaxAttempts, lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
	return fmt.Errorf("%s: retries exhausted: %w", op, lastErr)
}

func (c *Coordinator) runGroupsPoller(ctx context.Context) {
	ticker := time.NewTicker(groupsPollInterval)
	defer ticker.Stop()
	for {
		client := c.currentClient()
		if client == nil {
			return
		}
		err := c.withRetry(ctx, "describe-groups", func(ctx context.Context) error {
			opCtx, cancel := context.WithTimeout(ctx, opTimeout)
			defer cancel()
			groups, err := client.DescribeGroups(opCtx)
			if err != nil {
				return err
			}
			c.publish(GroupsEvent{Groups: groups})
			return nil
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			c.publish(StreamErrorEvent{Op: "describe-groups", Err: err})
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (c *Coordinator) runMetricsPoller(ctx context.Context) {
	ticker := time.NewTicker(metricsPollInterval)
	defer ticker.Stop()
	for {
		client := c.currentClient()
		if client == nil {
			return
		}
		err := c.withRetry(ctx, "poll-metrics", func(ctx context.Context) error {
			opCtx, cancel := context.WithTimeout(ctx, opTimeout)
			defer cancel()
			totals, err := client.Totals(opCtx)
			if err != nil {
				return err
			}
			c.publish(StatsEvent{Stats: c.deriveStats(totals)})
			return nil
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			c.publish(StreamErrorEvent{Op: "poll-metrics", Err: err})
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// deriveStats turns raw totals into rates using the previous poll as the
// baseline, and records the samples for the monitor screen.
func (c *Coordinator) deriveStats(t Totals) ClusterStats {
	now := time.Now()
	bytes := c.bytesConsumed.Load()

	c.statsMu.Lock()
	stats := ClusterStats{Topics: t.Topics, Partitions: t.Partitions, Groups: t.Groups}
	if c.haveBaseline {
		elapsed := now.Sub(c.lastStatsAt).Seconds()
		if elapsed > 0 {
			if d := t.EndOffsetSum - c.lastOffsets; d >= 0 {
				stats.MessagesPerSec = float64(d) / elapsed
			}
			if d := bytes - c.lastBytes; bytes >= c.lastBytes {
				stats.BytesPerSec = float64(d) / elapsed
			}
		}
	}
	c.lastOffsets = t.EndOffsetSum
	c.lastBytes = bytes
	c.lastStatsAt = now
	c.haveBaseline = true
	c.statsMu.Unlock()

	c.samples.Push(MetricSample{Subject: "messages/s", Value: stats.MessagesPerSec, Timestamp: now})
	c.samples.Push(MetricSample{Subject: "bytes/s", Value: stats.BytesPerSec, Timestamp: now})
	return stats
}
