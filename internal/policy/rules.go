package policy

import (
	"regexp"
	"strings"
)

// Category groups rules for reporting.
type Category string

const (
	CategoryDestructiveFS   Category = "destructive-fs"
	CategoryForkBomb        Category = "fork-bomb"
	CategoryRawDevice       Category = "raw-device"
	CategoryPermissions     Category = "permissions"
	CategoryPrivileged      Category = "privileged"
	CategoryNetwork         Category = "network"
	CategoryPipeToShell     Category = "pipe-to-shell"
	CategorySecurityDisable Category = "security-disable"

	CategoryEscalation Category = "escalation"
	CategoryProcess    Category = "process"
	CategoryPower      Category = "power"
)

// Rule is one entry of a rule table. Pattern is matched as a
// case-insensitive substring unless the rule carries a regular expression.
type Rule struct {
	Pattern  string
	Category Category
	re       *regexp.Regexp
}

func substring(pattern string, c Category) Rule {
	return Rule{Pattern: pattern, Category: c}
}

// expr builds a rule matched by a case-insensitive regular expression.
// Pattern is the literal shown to callers.
func expr(pattern string, c Category, re string) Rule {
	return Rule{Pattern: pattern, Category: c, re: regexp.MustCompile(`(?i)` + re)}
}

// Matches reports whether the rule matches command.
func (r Rule) Matches(command string) bool {
	if r.re != nil {
		return r.re.MatchString(command)
	}
	return strings.Contains(strings.ToLower(command), strings.ToLower(r.Pattern))
}

// BlockedRules is evaluated in order; the first hit blocks the command.
var BlockedRules = []Rule{
	substring("rm -rf /", CategoryDestructiveFS),
	substring("rm -rf /*", CategoryDestructiveFS),
	substring("rm -rf ~", CategoryDestructiveFS),
	substring("rm -rf $HOME", CategoryDestructiveFS),
	substring("rm -fr /", CategoryDestructiveFS),
	substring(":(){:|:&};:", CategoryForkBomb),
	substring(":(){ :|:& };:", CategoryForkBomb),
	substring("mkfs", CategoryDestructiveFS),
	substring("dd if=", CategoryRawDevice),
	substring("> /dev/sd", CategoryRawDevice),
	substring(">/dev/sd", CategoryRawDevice),
	substring("chmod -R 777 /", CategoryPermissions),
	substring("sudo rm", CategoryPrivileged),
	substring("sudo mkfs", CategoryPrivileged),
	substring("sudo dd", CategoryPrivileged),
	substring("nc -l", CategoryNetwork),
	substring("nmap", CategoryNetwork),
	expr("curl | sh", CategoryPipeToShell, `\bcurl\b[^|]*\|\s*(sudo\s+)?(ba|z|k|da)?sh\b`),
	expr("wget | sh", CategoryPipeToShell, `\bwget\b[^|]*\|\s*(sudo\s+)?(ba|z|k|da)?sh\b`),
	substring("csrutil disable", CategorySecurityDisable),
	substring("spctl --master-disable", CategorySecurityDisable),
}

// WarnRules flag commands that run but are logged.
var WarnRules = []Rule{
	substring("sudo", CategoryEscalation),
	substring("rm -rf", CategoryDestructiveFS),
	substring("chmod", CategoryPermissions),
	substring("chown", CategoryPermissions),
	substring("kill -9", CategoryProcess),
	substring("pkill", CategoryProcess),
	substring("shutdown", CategoryPower),
	substring("reboot", CategoryPower),
}
