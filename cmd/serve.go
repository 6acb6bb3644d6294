package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/platform"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP bridge on the loopback interface",
	Long: `Run the HTTP bridge. The bridge only listens on a loopback address and
handles one request at a time. On startup the OS permission prompts for
screen recording and accessibility are triggered where the platform has them.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0, "Port to listen on (default from config or DESKTOP_BRIDGE_PORT)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics at /metrics")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Metrics, _ = cmd.Flags().GetBool("metrics")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	platform.RequestPermissions()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting bridge", "addr", cfg.Addr(), "metrics", cfg.Metrics)
	return newServer().ListenAndServe(ctx)
}
