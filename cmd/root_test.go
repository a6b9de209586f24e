package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", rootCmd.Version)
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "kafeye", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"config", "brokers", "debug"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "flag %s must exist", name)
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "kafeye version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})

	require.NoError(t, testCmd.Execute())
	assert.Equal(t, "kafeye version 1.0.0\n", buf.String())
}
