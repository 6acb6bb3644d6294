package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text into the focused element",
	Long:  "Type text into the focused element. Text can be passed as a positional argument or via --text.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runType,
}

var keyCmd = &cobra.Command{
	Use:   "key <combo>",
	Short: "Press a key combination",
	Long: `Press a key combination such as "cmd+c", "ctrl+shift+t" or "enter".
Modifiers are pressed in order, the key is clicked once and the modifiers
are released in reverse. Unknown key names are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(keyCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to positional arg)")
}

func runType(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	if len(args) > 0 {
		text = args[0]
	}
	if text == "" {
		return fmt.Errorf("nothing to type: pass text as an argument or --text")
	}
	return runAction(cmd, autopilot.Action{Type: autopilot.TypeText, Text: &text}, "")
}

func runKey(cmd *cobra.Command, args []string) error {
	keys := parseKeyCombo(args[0])
	if len(keys) == 0 {
		return fmt.Errorf("empty key combination")
	}
	return runAction(cmd, autopilot.Action{Type: autopilot.TypeKey, Keys: keys}, strings.Join(keys, "+"))
}
