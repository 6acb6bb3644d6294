package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll vertically at the current pointer position",
	RunE:  runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("direction", "down", "Scroll direction: up, down")
	scrollCmd.Flags().Int("amount", autopilot.DefaultScrollAmount, "Number of lines")
}

// scrollDelta converts a direction and amount to a signed delta, positive
// scrolling down.
func scrollDelta(direction string, amount int) (int, error) {
	switch strings.ToLower(direction) {
	case "down":
		return amount, nil
	case "up":
		return -amount, nil
	default:
		return 0, fmt.Errorf("invalid direction %q: use up or down", direction)
	}
}

func runScroll(cmd *cobra.Command, args []string) error {
	direction, _ := cmd.Flags().GetString("direction")
	amount, _ := cmd.Flags().GetInt("amount")

	dy, err := scrollDelta(direction, amount)
	if err != nil {
		return err
	}
	return runAction(cmd, autopilot.Action{Type: autopilot.TypeScroll, DY: &dy}, fmt.Sprintf("dy=%d", dy))
}
