package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
	"github.com/twmb/franz-go/pkg/sasl/scram"

	"kafeye/internal/config"
	"kafeye/pkg/logging"
)

const clientSubsystem = "KafkaClient"

// Client is the broker-facing collaborator the coordinator drives. All
// network I/O happens behind this interface; tests substitute a fake.
type Client interface {
	// Ping verifies the cluster is reachable.
	Ping(ctx context.Context) error
	// ListTopics returns non-internal topic metadata, sorted by name.
	ListTopics(ctx context.Context) ([]TopicInfo, error)
	// Totals fetches the counters the metrics poller derives rates from.
	Totals(ctx context.Context) (Totals, error)
	// Produce sends one record and reports where it landed.
	Produce(ctx context.Context, topic, key, value string) (ProduceResult, error)
	// Consume streams records from topic into emit until ctx is done.
	Consume(ctx context.Context, topic string, emit func(Message)) error
	// DescribeGroups returns a snapshot of every consumer group.
	DescribeGroups(ctx context.Context) ([]GroupSnapshot, error)
	// Close releases all broker connections.
	Close()
}

// Dialer opens a Client against the given brokers. The coordinator holds
// one so tests can dial a fake.
type Dialer func(cfg config.KafkaConfig, brokers []string) (Client, error)

type franzClient struct {
	cfg     config.KafkaConfig
	brokers []string
	cl      *kgo.Client // shared admin + producer client
	adm     *kadm.Client
}

// Dial is the production Dialer.
func Dial(cfg config.KafkaConfig, brokers []string) (Client, error) {
	opts, err := baseOpts(cfg, brokers)
	if err != nil {
		return nil, err
	}
	opts = append(opts, producerOpts(cfg.Producer)...)

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}
	return &franzClient{
		cfg:     cfg,
		brokers: brokers,
		cl:      cl,
		adm:     kadm.NewClient(cl),
	}, nil
}

func baseOpts(cfg config.KafkaConfig, brokers []string) ([]kgo.Opt, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(cfg.ClientID),
	}
	sec := cfg.Security
	if sec == nil {
		return opts, nil
	}

	if sec.SSL != nil || sec.Protocol == "SSL" || sec.Protocol == "SASL_SSL" {
		tlsCfg, err := tlsConfig(sec.SSL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}

	if sasl := sec.SASL; sasl != nil {
		switch sasl.Mechanism {
		case "PLAIN":
			opts = append(opts, kgo.SASL(plain.Auth{
				User: sasl.Username,
				Pass: sasl.Password,
			}.AsMechanism()))
		case "SCRAM-SHA-256":
			opts = append(opts, kgo.SASL(scram.Auth{
				User: sasl.Username,
				Pass: sasl.Password,
			}.AsSha256Mechanism()))
		case "SCRAM-SHA-512":
			opts = append(opts, kgo.SASL(scram.Auth{
				User: sasl.Username,
				Pass: sasl.Password,
			}.AsSha512Mechanism()))
		default:
			return nil, fmt.Errorf("unsupported sasl mechanism %q", sasl.Mechanism)
		}
	}
	return opts, nil
}

func tlsConfig(ssl *config.SSLConfig) (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if ssl == nil {
		return tlsCfg, nil
	}
	if ssl.CALocation != "" {
		pem, err := os.ReadFile(ssl.CALocation)
		if err != nil {
			return nil, fmt.Errorf("reading CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates parsed from %s", ssl.CALocation)
		}
		tlsCfg.RootCAs = pool
	}
	if ssl.CertificateLocation != "" && ssl.KeyLocation != "" {
		cert, err := tls.LoadX509KeyPair(ssl.CertificateLocation, ssl.KeyLocation)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}

func producerOpts(p config.ProducerConfig) []kgo.Opt {
	var opts []kgo.Opt
	switch p.Acks {
	case "0", "none":
		opts = append(opts, kgo.RequiredAcks(kgo.NoAck()), kgo.DisableIdempotentWrite())
	case "1", "leader":
		opts = append(opts, kgo.RequiredAcks(kgo.LeaderAck()), kgo.DisableIdempotentWrite())
	default:
		opts = append(opts, kgo.RequiredAcks(kgo.AllISRAcks()))
	}
	switch p.CompressionType {
	case "gzip":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.GzipCompression()))
	case "snappy":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.SnappyCompression()))
	case "lz4":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.Lz4Compression()))
	case "zstd":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.ZstdCompression()))
	default:
		opts = append(opts, kgo.ProducerBatchCompression(kgo.NoCompression()))
	}
	if p.BatchSize > 0 {
		opts = append(opts, kgo.ProducerBatchMaxBytes(int32(p.BatchSize)))
	}
	if p.LingerMs > 0 {
		opts = append(opts, kgo.ProducerLinger(time.Duration(p.LingerMs)*time.Millisecond))
	}
	return opts
}

func consumerOpts(cfg config.KafkaConfig, brokers []string, topic string) ([]kgo.Opt, error) {
	opts, err := baseOpts(cfg, brokers)
	if err != nil {
		return nil, err
	}
	opts = append(opts, kgo.ConsumeTopics(topic))

	reset := kgo.NewOffset().AtStart()
	if cfg.Consumer.AutoOffsetReset == "latest" {
		reset = kgo.NewOffset().AtEnd()
	}
	opts = append(opts, kgo.ConsumeResetOffset(reset))

	if group := cfg.Consumer.GroupID; group != "" {
		opts = append(opts, kgo.ConsumerGroup(group))
		if cfg.Consumer.SessionTimeoutMs > 0 {
			opts = append(opts, kgo.SessionTimeout(time.Duration(cfg.Consumer.SessionTimeoutMs)*time.Millisecond))
		}
		if cfg.Consumer.HeartbeatIntervalMs > 0 {
			opts = append(opts, kgo.HeartbeatInterval(time.Duration(cfg.Consumer.HeartbeatIntervalMs)*time.Millisecond))
		}
		if !cfg.Consumer.AutoCommitEnabled() {
			opts = append(opts, kgo.DisableAutoCommit())
		} else if cfg.Consumer.AutoCommitIntervalMs > 0 {
			opts = append(opts, kgo.AutoCommitInterval(time.Duration(cfg.Consumer.AutoCommitIntervalMs)*time.Millisecond))
		}
	}
	return opts, nil
}

func (c *franzClient) Ping(ctx context.Context) error {
	return c.cl.Ping(ctx)
}

func (c *franzClient) ListTopics(ctx context.Context) ([]TopicInfo, error) {
	details, err := c.adm.ListTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	var topics []TopicInfo
	for name, td := range details {
		if td.Err != nil || td.IsInternal {
			continue
		}
		info := TopicInfo{Name: name, Partitions: len(td.Partitions)}
		for _, pd := range td.Partitions {
			info.Replicas = len(pd.Replicas)
			break
		}
		topics = append(topics, info)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

func (c *franzClient) Totals(ctx context.Context) (Totals, error) {
	topics, err := c.ListTopics(ctx)
	if err != nil {
		return Totals{}, err
	}
	var t Totals
	t.Topics = len(topics)
	names := make([]string, 0, len(topics))
	for _, ti := range topics {
		t.Partitions += ti.Partitions
		names = append(names, ti.Name)
	}

	groups, err := c.adm.ListGroups(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("listing groups: %w", err)
	}
	t.Groups = len(groups)

	if len(names) > 0 {
		ends, err := c.adm.ListEndOffsets(ctx, names...)
		if err != nil {
			return Totals{}, fmt.Errorf("listing end offsets: %w", err)
		}
		ends.Each(func(o kadm.ListedOffset) {
			if o.Err == nil {
				t.EndOffsetSum += o.Offset
			}
		})
	}
	return t, nil
}

func (c *franzClient) Produce(ctx context.Context, topic, key, value string) (ProduceResult, error) {
	rec := &kgo.Record{Topic: topic, Value: []byte(value)}
	if key != "" {
		rec.Key = []byte(key)
	}
	r, err := c.cl.ProduceSync(ctx, rec).First()
	if err != nil {
		return ProduceResult{}, fmt.Errorf("producing to %s: %w", topic, err)
	}
	return ProduceResult{Topic: r.Topic, Partition: r.Partition, Offset: r.Offset}, nil
}

// Consume opens a dedicated consumer client for topic and pumps records
// into emit until ctx is cancelled. Delivery order within the stream is the
// order the broker returned.
func (c *franzClient) Consume(ctx context.Context, topic string, emit func(Message)) error {
	opts, err := consumerOpts(c.cfg, c.brokers, topic)
	if err != nil {
		return err
	}
	consumer, err := kgo.NewClient(opts...)
	if err != nil {
		return fmt.Errorf("creating consumer for %s: %w", topic, err)
	}
	defer consumer.Close()

	logging.Info(clientSubsystem, "consuming from %s", topic)
	for {
		fetches := consumer.PollFetches(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			return fmt.Errorf("fetching from %s: %w", errs[0].Topic, errs[0].Err)
		}
		iter := fetches.RecordIter()
		for !iter.Done() {
			r := iter.Next()
			msg := Message{
				Topic:     r.Topic,
				Partition: r.Partition,
				Offset:    r.Offset,
				Key:       string(r.Key),
				Value:     string(r.Value),
				Timestamp: r.Timestamp,
			}
			if len(r.Headers) > 0 {
				msg.Headers = make(map[string]string, len(r.Headers))
				for _, h := range r.Headers {
					msg.Headers[h.Key] = string(h.Value)
				}
			}
			emit(msg)
		}
	}
}

func (c *franzClient) DescribeGroups(ctx context.Context) ([]GroupSnapshot, error) {
	listed, err := c.adm.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	if len(listed) == 0 {
		return nil, nil
	}
	described, err := c.adm.DescribeGroups(ctx, listed.Groups()...)
	if err != nil {
		return nil, fmt.Errorf("describing groups: %w", err)
	}

	now := time.Now()
	var snaps []GroupSnapshot
	for name, g := range described {
		snap := GroupSnapshot{
			Group:     name,
			State:     g.State,
			Protocol:  g.Protocol,
			Timestamp: now,
		}
		topicSet := map[string]struct{}{}
		for _, m := range g.Members {
			member := GroupMember{
				ID:       m.MemberID,
				ClientID: m.ClientID,
				Host:     m.ClientHost,
			}
			if assigned, ok := m.Assigned.AsConsumer(); ok {
				for _, at := range assigned.Topics {
					topicSet[at.Topic] = struct{}{}
					for _, p := range at.Partitions {
						member.Assignments = append(member.Assignments, TopicPartition{Topic: at.Topic, Partition: p})
					}
				}
			}
			snap.Members = append(snap.Members, member)
		}
		snap.Lag = c.groupLag(ctx, name, topicSet)
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Group < snaps[j].Group })
	return snaps, nil
}

// groupLag computes end-offset minus committed-offset per assigned
// partition. Lag is best effort: a failed lookup leaves the map empty
// rather than failing the whole group poll.
func (c *franzClient) groupLag(ctx context.Context, group string, topicSet map[string]struct{}) map[string]int64 {
	if len(topicSet) == 0 {
		return nil
	}
	topics := make([]string, 0, len(topicSet))
	for t := range topicSet {
		topics = append(topics, t)
	}

	committed, err := c.adm.FetchOffsets(ctx, group)
	if err != nil {
		logging.Debug(clientSubsystem, "fetch offsets for %s failed: %v", group, err)
		return nil
	}
	ends, err := c.adm.ListEndOffsets(ctx, topics...)
	if err != nil {
		logging.Debug(clientSubsystem, "list end offsets for %s failed: %v", group, err)
		return nil
	}

	lag := make(map[string]int64)
	ends.Each(func(end kadm.ListedOffset) {
		if end.Err != nil {
			return
		}
		at := int64(0)
		if o, ok := committed.Lookup(end.Topic, end.Partition); ok && o.Err == nil {
			at = o.At
		}
		if d := end.Offset - at; d >= 0 {
			lag[fmt.Sprintf("%s/%d", end.Topic, end.Partition)] = d
		}
	})
	return lag
}

func (c *franzClient) Close() {
	c.cl.Close()
}
