package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
)

var moveCmd = &cobra.Command{
	Use:     "move",
	Aliases: []string{"hover"},
	Short:   "Move the mouse pointer without clicking",
	RunE:    runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().Int("x", 0, "X coordinate")
	moveCmd.Flags().Int("y", 0, "Y coordinate")
	_ = moveCmd.MarkFlagRequired("x")
	_ = moveCmd.MarkFlagRequired("y")
	addImageSpaceFlags(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	x, y := pointFlags(cmd)
	return runAction(cmd, autopilot.Action{Type: autopilot.TypeMove, X: x, Y: y}, "")
}
