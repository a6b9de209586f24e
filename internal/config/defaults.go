package config

func boolPtr(b bool) *bool { return &b }

// GetDefaultConfig returns the configuration used when no config file is
// present. It matches a local single-broker development cluster.
func GetDefaultConfig() Config {
	return Config{
		Kafka: KafkaConfig{
			Brokers:  []string{"localhost:9092"},
			ClientID: "kafeye",
			Producer: ProducerConfig{
				Acks:            "all",
				CompressionType: "none",
				BatchSize:       16384,
				LingerMs:        0,
			},
			Consumer: ConsumerConfig{
				GroupID:              "kafeye-console",
				AutoOffsetReset:      "earliest",
				EnableAutoCommit:     boolPtr(true),
				AutoCommitIntervalMs: 5000,
				SessionTimeoutMs:     30000,
				HeartbeatIntervalMs:  3000,
			},
		},
		UI: UIConfig{
			Theme:             "default",
			RefreshIntervalMs: 1000,
			MaxMessages:       1000,
			VimMode:           boolPtr(true),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
