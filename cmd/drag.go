package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
)

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag with the left button from one point to another",
	RunE:  runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	dragCmd.Flags().Int("from-x", 0, "Start X coordinate")
	dragCmd.Flags().Int("from-y", 0, "Start Y coordinate")
	dragCmd.Flags().Int("to-x", 0, "End X coordinate")
	dragCmd.Flags().Int("to-y", 0, "End Y coordinate")
	for _, f := range []string{"from-x", "from-y", "to-x", "to-y"} {
		_ = dragCmd.MarkFlagRequired(f)
	}
	addImageSpaceFlags(dragCmd)
}

func runDrag(cmd *cobra.Command, args []string) error {
	fromX, _ := cmd.Flags().GetInt("from-x")
	fromY, _ := cmd.Flags().GetInt("from-y")
	toX, _ := cmd.Flags().GetInt("to-x")
	toY, _ := cmd.Flags().GetInt("to-y")

	a := autopilot.Action{
		Type:   autopilot.TypeDrag,
		StartX: &fromX,
		StartY: &fromY,
		EndX:   &toX,
		EndY:   &toY,
	}
	return runAction(cmd, a, fmt.Sprintf("(%d,%d) -> (%d,%d)", fromX, fromY, toX, toY))
}
