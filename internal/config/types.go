package config

// Config is the top-level configuration structure for kafeye.
type Config struct {
	Kafka   KafkaConfig   `yaml:"kafka"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// KafkaConfig describes the cluster to connect to and the tuning for the
// producer and consumer the client creates against it.
type KafkaConfig struct {
	Brokers  []string        `yaml:"brokers"`
	ClientID string          `yaml:"client_id"`
	Security *SecurityConfig `yaml:"security,omitempty"`
	Producer ProducerConfig  `yaml:"producer"`
	Consumer ConsumerConfig  `yaml:"consumer"`
}

// SecurityConfig selects the transport security for broker connections.
// Protocol is one of PLAINTEXT, SSL, SASL_PLAINTEXT, SASL_SSL.
type SecurityConfig struct {
	Protocol string      `yaml:"protocol"`
	SASL     *SASLConfig `yaml:"sasl,omitempty"`
	SSL      *SSLConfig  `yaml:"ssl,omitempty"`
}

// SASLConfig carries SASL credentials. Mechanism is PLAIN, SCRAM-SHA-256
// or SCRAM-SHA-512.
type SASLConfig struct {
	Mechanism string `yaml:"mechanism"`
	Username  string `yaml:"username,omitempty"`
	Password  string `yaml:"password,omitempty"`
}

// SSLConfig points at the PEM material used for TLS connections.
type SSLConfig struct {
	CALocation          string `yaml:"ca_location,omitempty"`
	CertificateLocation string `yaml:"certificate_location,omitempty"`
	KeyLocation         string `yaml:"key_location,omitempty"`
}

// ProducerConfig tunes produced batches.
type ProducerConfig struct {
	Acks            string `yaml:"acks"`
	CompressionType string `yaml:"compression_type"`
	BatchSize       int    `yaml:"batch_size"`
	LingerMs        int    `yaml:"linger_ms"`
}

// ConsumerConfig tunes the consume streams the client opens. Bool fields
// are pointers so a config file that omits them keeps the default instead
// of silently reading as false.
type ConsumerConfig struct {
	GroupID              string `yaml:"group_id,omitempty"`
	AutoOffsetReset      string `yaml:"auto_offset_reset"`
	EnableAutoCommit     *bool  `yaml:"enable_auto_commit"`
	AutoCommitIntervalMs int    `yaml:"auto_commit_interval_ms"`
	SessionTimeoutMs     int    `yaml:"session_timeout_ms"`
	HeartbeatIntervalMs  int    `yaml:"heartbeat_interval_ms"`
}

// AutoCommitEnabled resolves the pointer field; unset means enabled.
func (c ConsumerConfig) AutoCommitEnabled() bool {
	return c.EnableAutoCommit == nil || *c.EnableAutoCommit
}

// UIConfig holds the terminal client settings.
type UIConfig struct {
	Theme             string `yaml:"theme"`
	RefreshIntervalMs int    `yaml:"refresh_interval_ms"`
	MaxMessages       int    `yaml:"max_messages"`
	VimMode           *bool  `yaml:"vim_mode"`
}

// VimModeEnabled resolves the pointer field; unset means enabled.
func (u UIConfig) VimModeEnabled() bool {
	return u.VimMode == nil || *u.VimMode
}

// LoggingConfig selects log verbosity and an optional file sink. In TUI
// mode the file is the only durable sink; the overlay shows a rolling tail.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}
