package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the bridge as an MCP server",
	Long: `Expose the bridge operations as Model Context Protocol tools.

Tools: capture, act, computer, shell, shell_preview, shell_restart, permissions.

The shell tool goes through the same policy gate as the HTTP bridge.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8090, "Port for the streamable-http transport")
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	return server.ServeMCP(newServer(), transport, port)
}
