package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/output"
	"github.com/mj1618/desktop-bridge/internal/server"
)

var captureCmd = &cobra.Command{
	Use:     "capture",
	Aliases: []string{"screenshot"},
	Short:   "Capture the primary display as JPEG",
	Long: `Capture the primary display, downscale it to at most --max-width pixels
wide and encode it as JPEG. The image is written to --output, or printed as
base64 when no output path is given.`,
	RunE: runCapture,
}

// CaptureResult is the output of the capture command.
type CaptureResult struct {
	Path         string `yaml:"path,omitempty"         json:"path,omitempty"`
	ImageBase64  string `yaml:"image_base64,omitempty" json:"image_base64,omitempty"`
	Width        int    `yaml:"width"                  json:"width"`
	Height       int    `yaml:"height"                 json:"height"`
	ScreenWidth  int    `yaml:"screen_width"           json:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"          json:"screen_height"`
	Format       string `yaml:"format"                 json:"format"`
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().Int("max-width", 0, "Maximum image width (default from config)")
	captureCmd.Flags().Int("quality", 0, "JPEG quality 1-100 (default from config)")
	captureCmd.Flags().String("output", "", "Write the JPEG to this path instead of printing base64")
}

func runCapture(cmd *cobra.Command, args []string) error {
	maxWidth, _ := cmd.Flags().GetInt("max-width")
	quality, _ := cmd.Flags().GetInt("quality")
	path, _ := cmd.Flags().GetString("output")

	resp, err := newServer().Capture(server.CaptureRequest{MaxWidth: maxWidth, Quality: quality})
	if err != nil {
		return err
	}

	result := CaptureResult{
		Width:        resp.Width,
		Height:       resp.Height,
		ScreenWidth:  resp.ScreenWidth,
		ScreenHeight: resp.ScreenHeight,
		Format:       resp.Format,
	}
	if path == "" {
		result.ImageBase64 = resp.ImageBase64
		return output.Print(result)
	}

	data, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	if err != nil {
		return fmt.Errorf("decode capture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	result.Path = path
	return output.Print(result)
}
