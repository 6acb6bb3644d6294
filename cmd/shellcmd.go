package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-bridge/internal/output"
	"github.com/mj1618/desktop-bridge/internal/policy"
	"github.com/mj1618/desktop-bridge/internal/server"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run or preview shell commands through the policy gate",
}

var shellRunCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run a shell command unless the policy blocks it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShellRun,
}

var shellPreviewCmd = &cobra.Command{
	Use:   "preview <command>",
	Short: "Echo a shell command without running it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShellPreview,
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect the shell command policy",
}

var policyCheckCmd = &cobra.Command{
	Use:   "check <command>",
	Short: "Classify a command as allowed, warned or blocked",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPolicyCheck,
}

var policyRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the blocked and warning rules",
	RunE:  runPolicyRules,
}

// PolicyRule is one row of the policy rules listing.
type PolicyRule struct {
	Verdict  string `yaml:"verdict"  json:"verdict"`
	Pattern  string `yaml:"pattern"  json:"pattern"`
	Category string `yaml:"category" json:"category"`
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.AddCommand(shellRunCmd)
	shellRunCmd.Flags().String("work-dir", "", "Directory to run the command in")
	shellCmd.AddCommand(shellPreviewCmd)
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyCheckCmd)
	policyCmd.AddCommand(policyRulesCmd)
}

func runShellRun(cmd *cobra.Command, args []string) error {
	workDir, _ := cmd.Flags().GetString("work-dir")
	resp, err := newServer().ExecuteShell(context.Background(), server.ShellRequest{Command: strings.Join(args, " "), WorkDir: workDir})
	if err != nil {
		return err
	}
	return output.Print(resp)
}

func runShellPreview(cmd *cobra.Command, args []string) error {
	return output.Print(newServer().PreviewShell(server.ShellRequest{Command: strings.Join(args, " ")}))
}

func runPolicyCheck(cmd *cobra.Command, args []string) error {
	return output.Print(policy.Classify(strings.Join(args, " ")))
}

func runPolicyRules(cmd *cobra.Command, args []string) error {
	return output.Print(policyRules(policy.DefaultGate))
}

func policyRules(g policy.Gate) []PolicyRule {
	var rules []PolicyRule
	for _, r := range g.Blocked {
		rules = append(rules, PolicyRule{Verdict: policy.Blocked.String(), Pattern: r.Pattern, Category: string(r.Category)})
	}
	for _, r := range g.Warn {
		rules = append(rules, PolicyRule{Verdict: policy.Warned.String(), Pattern: r.Pattern, Category: string(r.Category)})
	}
	return rules
}
