package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()

	originalGetUserConfigPath := getUserConfigPath
	defer func() { getUserConfigPath = originalGetUserConfigPath }()

	// Point at a non-existent file so only defaults apply.
	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "non-existent-config.yaml"), nil
	}

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	want := GetDefaultConfig()
	assert.Equal(t, want.Kafka.Brokers, cfg.Kafka.Brokers)
	assert.Equal(t, want.Kafka.ClientID, cfg.Kafka.ClientID)
	assert.Equal(t, want.UI.RefreshIntervalMs, cfg.UI.RefreshIntervalMs)
	assert.Equal(t, want.UI.MaxMessages, cfg.UI.MaxMessages)
}

func TestLoadConfig_FileOverride(t *testing.T) {
	path := writeTempConfig(t, `
kafka:
  brokers: ["broker1:9092", "broker2:9092"]
  client_id: kafeye-staging
  consumer:
    auto_offset_reset: latest
    enable_auto_commit: false
ui:
  refresh_interval_ms: 250
  max_messages: 3
  vim_mode: false
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "kafeye-staging", cfg.Kafka.ClientID)
	assert.Equal(t, "latest", cfg.Kafka.Consumer.AutoOffsetReset)
	assert.Equal(t, 250, cfg.UI.RefreshIntervalMs)
	assert.Equal(t, 3, cfg.UI.MaxMessages)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// An explicit false overrides the default-true bools.
	assert.False(t, cfg.Kafka.Consumer.AutoCommitEnabled())
	assert.False(t, cfg.UI.VimModeEnabled())

	// Fields the file omits keep their defaults.
	assert.Equal(t, "all", cfg.Kafka.Producer.Acks)
	assert.Equal(t, 30000, cfg.Kafka.Consumer.SessionTimeoutMs)
}

func TestLoadConfig_PartialFileKeepsBoolDefaults(t *testing.T) {
	// A file that only sets brokers must not flip the default-true bools
	// to false just because yaml reads absent keys as zero values.
	path := writeTempConfig(t, `
kafka:
  brokers: ["broker1:9092"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Kafka.Consumer.AutoCommitEnabled())
	assert.True(t, cfg.UI.VimModeEnabled())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "no brokers",
			mutate:  func(c *Config) { c.Kafka.Brokers = nil },
			wantErr: "at least one broker",
		},
		{
			name:    "broker without port",
			mutate:  func(c *Config) { c.Kafka.Brokers = []string{"localhost"} },
			wantErr: "expected host:port",
		},
		{
			name:    "empty client id",
			mutate:  func(c *Config) { c.Kafka.ClientID = "" },
			wantErr: "client_id",
		},
		{
			name: "unknown security protocol",
			mutate: func(c *Config) {
				c.Kafka.Security = &SecurityConfig{Protocol: "KERBEROS"}
			},
			wantErr: "invalid security protocol",
		},
		{
			name: "sasl protocol without sasl block",
			mutate: func(c *Config) {
				c.Kafka.Security = &SecurityConfig{Protocol: "SASL_SSL"}
			},
			wantErr: "sasl configuration is required",
		},
		{
			name:    "zero refresh interval",
			mutate:  func(c *Config) { c.UI.RefreshIntervalMs = 0 },
			wantErr: "refresh_interval_ms",
		},
		{
			name:    "zero max messages",
			mutate:  func(c *Config) { c.UI.MaxMessages = 0 },
			wantErr: "max_messages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
