package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
	"github.com/mj1618/desktop-bridge/internal/output"
	"github.com/mj1618/desktop-bridge/internal/server"
)

// ActionResult is the output of the input commands.
type ActionResult struct {
	OK     bool   `yaml:"ok"                json:"ok"`
	Action string `yaml:"action"            json:"action"`
	X      *int   `yaml:"x,omitempty"       json:"x,omitempty"`
	Y      *int   `yaml:"y,omitempty"       json:"y,omitempty"`
	Detail string `yaml:"detail,omitempty"  json:"detail,omitempty"`
}

// newServer builds a bridge server from the resolved config. One-shot
// commands call its methods directly so they share the bridge code path.
func newServer() *server.Server {
	return server.New(cfg, server.WithLogger(logger))
}

// addImageSpaceFlags registers the flags that describe the image the given
// coordinates refer to.
func addImageSpaceFlags(cmd *cobra.Command) {
	cmd.Flags().Int("image-width", 0, "Width of the image the coordinates refer to (0 = screen coordinates)")
	cmd.Flags().Int("image-height", 0, "Height of the image the coordinates refer to (0 = screen coordinates)")
}

// runAction performs a through the bridge and prints the result.
func runAction(cmd *cobra.Command, a autopilot.Action, detail string) error {
	iw, _ := cmd.Flags().GetInt("image-width")
	ih, _ := cmd.Flags().GetInt("image-height")

	resp, err := newServer().Act(server.ActRequest{Action: a, ImageWidth: iw, ImageHeight: ih})
	if err != nil {
		return err
	}
	return output.Print(ActionResult{OK: true, Action: resp.Summary, X: a.X, Y: a.Y, Detail: detail})
}

// pointFlags returns --x/--y when both were set. A partial point is dropped
// and the action runs at the current pointer position.
func pointFlags(cmd *cobra.Command) (x, y *int) {
	if !cmd.Flags().Changed("x") || !cmd.Flags().Changed("y") {
		return nil, nil
	}
	xv, _ := cmd.Flags().GetInt("x")
	yv, _ := cmd.Flags().GetInt("y")
	return &xv, &yv
}

// parseKeyCombo splits "cmd+shift+t" into key names. A lone "+" is the
// plus key.
func parseKeyCombo(combo string) []string {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return nil
	}
	if combo == "+" {
		return []string{"+"}
	}
	var keys []string
	for _, k := range strings.Split(combo, "+") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
