package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/kafeye"
	configFileName = "config.yaml"
)

// LoadConfig loads the kafeye configuration. An explicit path wins; with
// an empty path the user config file is used when present, otherwise the
// defaults. The result is validated before it is returned.
func LoadConfig(path string) (Config, error) {
	cfg := GetDefaultConfig()

	if path == "" {
		userPath, err := getUserConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
		} else if _, err := os.Stat(userPath); !os.IsNotExist(err) {
			path = userPath
		}
	}

	if path != "" {
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		cfg = mergeConfigs(cfg, fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base value in place, so a partial file only
// overrides what it mentions.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if len(overlay.Kafka.Brokers) > 0 {
		merged.Kafka.Brokers = overlay.Kafka.Brokers
	}
	if overlay.Kafka.ClientID != "" {
		merged.Kafka.ClientID = overlay.Kafka.ClientID
	}
	if overlay.Kafka.Security != nil {
		merged.Kafka.Security = overlay.Kafka.Security
	}
	if overlay.Kafka.Producer.Acks != "" {
		merged.Kafka.Producer.Acks = overlay.Kafka.Producer.Acks
	}
	if overlay.Kafka.Producer.CompressionType != "" {
		merged.Kafka.Producer.CompressionType = overlay.Kafka.Producer.CompressionType
	}
	if overlay.Kafka.Producer.BatchSize != 0 {
		merged.Kafka.Producer.BatchSize = overlay.Kafka.Producer.BatchSize
	}
	if overlay.Kafka.Producer.LingerMs != 0 {
		merged.Kafka.Producer.LingerMs = overlay.Kafka.Producer.LingerMs
	}
	if overlay.Kafka.Consumer.GroupID != "" {
		merged.Kafka.Consumer.GroupID = overlay.Kafka.Consumer.GroupID
	}
	if overlay.Kafka.Consumer.AutoOffsetReset != "" {
		merged.Kafka.Consumer.AutoOffsetReset = overlay.Kafka.Consumer.AutoOffsetReset
	}
	if overlay.Kafka.Consumer.AutoCommitIntervalMs != 0 {
		merged.Kafka.Consumer.AutoCommitIntervalMs = overlay.Kafka.Consumer.AutoCommitIntervalMs
	}
	if overlay.Kafka.Consumer.SessionTimeoutMs != 0 {
		merged.Kafka.Consumer.SessionTimeoutMs = overlay.Kafka.Consumer.SessionTimeoutMs
	}
	if overlay.Kafka.Consumer.HeartbeatIntervalMs != 0 {
		merged.Kafka.Consumer.HeartbeatIntervalMs = overlay.Kafka.Consumer.HeartbeatIntervalMs
	}
	if overlay.Kafka.Consumer.EnableAutoCommit != nil {
		merged.Kafka.Consumer.EnableAutoCommit = overlay.Kafka.Consumer.EnableAutoCommit
	}

	if overlay.UI.Theme != "" {
		merged.UI.Theme = overlay.UI.Theme
	}
	if overlay.UI.RefreshIntervalMs != 0 {
		merged.UI.RefreshIntervalMs = overlay.UI.RefreshIntervalMs
	}
	if overlay.UI.MaxMessages != 0 {
		merged.UI.MaxMessages = overlay.UI.MaxMessages
	}
	if overlay.UI.VimMode != nil {
		merged.UI.VimMode = overlay.UI.VimMode
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.File != "" {
		merged.Logging.File = overlay.Logging.File
	}

	return merged
}

// Validate rejects configurations the data plane cannot work with. It runs
// once at startup; the core treats the result as immutable afterwards.
func (c Config) Validate() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one broker must be configured")
	}
	for _, b := range c.Kafka.Brokers {
		if !strings.Contains(b, ":") {
			return fmt.Errorf("invalid broker %q: expected host:port", b)
		}
	}
	if c.Kafka.ClientID == "" {
		return fmt.Errorf("client_id cannot be empty")
	}
	if sec := c.Kafka.Security; sec != nil {
		switch sec.Protocol {
		case "PLAINTEXT", "SSL", "SASL_PLAINTEXT", "SASL_SSL":
		default:
			return fmt.Errorf("invalid security protocol %q", sec.Protocol)
		}
		if strings.Contains(sec.Protocol, "SASL") && sec.SASL == nil {
			return fmt.Errorf("sasl configuration is required for protocol %s", sec.Protocol)
		}
	}
	if c.UI.RefreshIntervalMs <= 0 {
		return fmt.Errorf("refresh_interval_ms must be positive")
	}
	if c.UI.MaxMessages <= 0 {
		return fmt.Errorf("max_messages must be positive")
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
