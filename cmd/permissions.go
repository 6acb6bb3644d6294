package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/output"
	"github.com/mj1618/desktop-bridge/internal/platform"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Report screen recording and accessibility permissions",
	RunE:  runPermissions,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.Flags().Bool("request", false, "Trigger the OS permission prompts first")
}

func runPermissions(cmd *cobra.Command, args []string) error {
	if request, _ := cmd.Flags().GetBool("request"); request {
		platform.RequestPermissions()
	}
	status, err := newServer().Permissions()
	if err != nil {
		return err
	}
	return output.Print(status)
}
