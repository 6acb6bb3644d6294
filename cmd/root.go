package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/affinity"
	"github.com/mj1618/desktop-bridge/internal/config"
	"github.com/mj1618/desktop-bridge/internal/logging"
	"github.com/mj1618/desktop-bridge/internal/output"
	"github.com/mj1618/desktop-bridge/internal/version"
)

// Settings resolved by the root command before any subcommand runs.
var (
	cfg    = config.Default()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "desktop-bridge",
	Short: "Local automation bridge for screen capture, input and shell",
	Long: `A loopback-only bridge that lets a co-located orchestrator capture the
screen, synthesize mouse and keyboard input and run policy-gated shell
commands. Every bridge operation is also available as a one-shot command.`,
	SilenceUsage: true,
}

// Execute runs the root command. On platforms that require it, the calling
// goroutine serves main-thread work for the lifetime of the command.
func Execute() {
	if err := affinity.Main(rootCmd.Execute); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		if level == "" {
			level = cfg.LogLevel
		}
		logger = logging.NewLogger(logging.Options{Level: level, Component: cmd.Name()})
		slog.SetDefault(logger)
		return nil
	}
}
