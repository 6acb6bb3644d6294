// Package policy decides whether a shell command may run. It is a pure
// classifier over two ordered rule tables and never touches the OS.
package policy

import (
	"fmt"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

// Verdict is the outcome of classifying a command.
type Verdict int

const (
	Allowed Verdict = iota
	Warned
	Blocked
)

func (v Verdict) String() string {
	switch v {
	case Warned:
		return "warned"
	case Blocked:
		return "blocked"
	default:
		return "allowed"
	}
}

// MarshalText renders the verdict as its lowercase name.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Decision is a classification together with the rule that produced it.
type Decision struct {
	Verdict  Verdict  `yaml:"verdict"            json:"verdict"`
	Pattern  string   `yaml:"pattern,omitempty"  json:"pattern,omitempty"`
	Category Category `yaml:"category,omitempty" json:"category,omitempty"`
	Reason   string   `yaml:"reason,omitempty"   json:"reason,omitempty"`
}

// Runnable reports whether the command may reach the executor.
func (d Decision) Runnable() bool {
	return d.Verdict != Blocked
}

// Gate classifies commands against a pair of rule tables.
type Gate struct {
	Blocked []Rule
	Warn    []Rule
}

// DefaultGate uses BlockedRules and WarnRules.
var DefaultGate = Gate{Blocked: BlockedRules, Warn: WarnRules}

// Classify classifies command with DefaultGate.
func Classify(command string) Decision {
	return DefaultGate.Classify(command)
}

// Classify returns Blocked for the first matching blocked rule, otherwise
// Warned for the first matching warn rule, otherwise Allowed.
func (g Gate) Classify(command string) Decision {
	for _, r := range g.Blocked {
		if r.Matches(command) {
			return Decision{
				Verdict:  Blocked,
				Pattern:  r.Pattern,
				Category: r.Category,
				Reason:   fmt.Sprintf("command contains blocked pattern: %s", r.Pattern),
			}
		}
	}
	for _, r := range g.Warn {
		if r.Matches(command) {
			return Decision{
				Verdict:  Warned,
				Pattern:  r.Pattern,
				Category: r.Category,
				Reason:   fmt.Sprintf("command uses %s", r.Pattern),
			}
		}
	}
	return Decision{Verdict: Allowed}
}

// Check returns a POLICY_VIOLATION error when command is blocked.
func (g Gate) Check(command string) (Decision, error) {
	d := g.Classify(command)
	if d.Verdict == Blocked {
		return d, bridgeerrors.New(bridgeerrors.ErrCodePolicyViolation, d.Reason)
	}
	return d, nil
}
