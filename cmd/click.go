package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at coordinates or at the current pointer position",
	Long:  "Click at absolute screen coordinates, or at image coordinates when --image-width/--image-height describe the image they came from.",
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "X coordinate")
	clickCmd.Flags().Int("y", 0, "Y coordinate")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click (left button)")
	addImageSpaceFlags(clickCmd)
}

func runClick(cmd *cobra.Command, args []string) error {
	x, y := pointFlags(cmd)
	button, _ := cmd.Flags().GetString("button")
	double, _ := cmd.Flags().GetBool("double")

	a := autopilot.Action{Type: autopilot.TypeClick, X: x, Y: y, Button: button}
	if double {
		a = autopilot.Action{Type: autopilot.TypeDoubleClick, X: x, Y: y}
	}
	return runAction(cmd, a, "")
}
