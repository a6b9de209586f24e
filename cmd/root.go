package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kafeye/internal/config"
	"kafeye/internal/kafka"
	"kafeye/internal/tui/controller"
	"kafeye/pkg/logging"
)

var (
	cfgFile   string
	brokers   string
	debugMode bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kafeye",
	Short: "A modal terminal console for Kafka clusters",
	Long: `kafeye is a vim-style terminal console for operating Kafka clusters:
browse topics and consumer groups, stream records, produce messages and
watch throughput, all from the keyboard.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid configuration, failed connections)
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if brokers != "" {
			cfg.Kafka.Brokers = strings.Split(brokers, ",")
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validating configuration: %w", err)
			}
		}

		level := logging.ParseLevel(cfg.Logging.Level)
		if debugMode {
			level = logging.LevelDebug
		}
		logCh := logging.InitForTUI(level, cfg.Logging.File)

		coord := kafka.NewCoordinator(cfg.Kafka, cfg.UI.MaxMessages, nil)
		p := controller.NewProgram(cfg, coord, logCh, debugMode)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running terminal UI: %w", err)
		}
		return nil
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kafeye version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.config/kafeye/config.yaml)")
	rootCmd.Flags().StringVarP(&brokers, "brokers", "b", "", "comma-separated broker list, overrides the config file")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "force debug-level logging")
}
