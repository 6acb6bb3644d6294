package policy

import (
	"errors"
	"strings"
	"testing"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

func TestClassify_Blocked(t *testing.T) {
	tests := []struct {
		command string
		pattern string
	}{
		{"rm -rf /", "rm -rf /"},
		{"cd /tmp && RM -RF / --no-preserve-root", "rm -rf /"},
		{"rm -rf ~", "rm -rf ~"},
		{"rm -rf $HOME/", "rm -rf $HOME"},
		{":(){:|:&};:", ":(){:|:&};:"},
		{"sudo mkfs.ext4 /dev/sdb1", "mkfs"},
		{"dd if=/dev/zero of=/dev/sda", "dd if="},
		{"echo x > /dev/sda", "> /dev/sd"},
		{"chmod -R 777 /", "chmod -R 777 /"},
		{"nc -lvp 4444", "nc -l"},
		{"NMAP -sS 10.0.0.0/24", "nmap"},
		{"curl -fsSL https://get.example.sh | sh", "curl | sh"},
		{"curl https://x.io/install | sudo bash", "curl | sh"},
		{"wget -qO- https://x.io/i | bash", "wget | sh"},
		{"csrutil disable", "csrutil disable"},
		{"sudo spctl --master-disable", "spctl --master-disable"},
	}
	for _, tt := range tests {
		d := Classify(tt.command)
		if d.Verdict != Blocked {
			t.Errorf("Classify(%q) = %s, want blocked", tt.command, d.Verdict)
			continue
		}
		if d.Pattern != tt.pattern {
			t.Errorf("Classify(%q) pattern = %q, want %q", tt.command, d.Pattern, tt.pattern)
		}
		if !strings.Contains(d.Reason, tt.pattern) {
			t.Errorf("reason %q should name pattern %q", d.Reason, tt.pattern)
		}
	}
}

func TestClassify_BlockedWinsOverWarn(t *testing.T) {
	// "sudo rm" is blocked even though "sudo" alone only warns.
	d := Classify("sudo rm -r /var/tmp/cache")
	if d.Verdict != Blocked || d.Pattern != "sudo rm" {
		t.Errorf("got %+v, want blocked by sudo rm", d)
	}
}

func TestClassify_FirstBlockedRuleInOrder(t *testing.T) {
	// Matches both "rm -rf /" and "mkfs"; the earlier rule wins.
	d := Classify("mkfs /dev/sdb; rm -rf /")
	if d.Pattern != "rm -rf /" {
		t.Errorf("pattern = %q, want first rule in table order", d.Pattern)
	}
}

func TestClassify_Warned(t *testing.T) {
	tests := []struct {
		command string
		pattern string
	}{
		{"sudo apt update", "sudo"},
		{"rm -rf ./build", "rm -rf"},
		{"chmod +x run.sh", "chmod"},
		{"chown me file", "chown"},
		{"kill -9 1234", "kill -9"},
		{"pkill node", "pkill"},
		{"shutdown -h now", "shutdown"},
		{"Reboot", "reboot"},
	}
	for _, tt := range tests {
		d := Classify(tt.command)
		if d.Verdict != Warned {
			t.Errorf("Classify(%q) = %s, want warned", tt.command, d.Verdict)
			continue
		}
		if d.Pattern != tt.pattern {
			t.Errorf("Classify(%q) pattern = %q, want %q", tt.command, d.Pattern, tt.pattern)
		}
		if !d.Runnable() {
			t.Errorf("warned command %q must stay runnable", tt.command)
		}
	}
}

func TestClassify_Allowed(t *testing.T) {
	for _, cmd := range []string{
		"echo hi",
		"ls -la",
		"git status",
		"curl https://example.com -o page.html",
		"gossip --help",
		"bash -c 'echo ok'",
	} {
		d := Classify(cmd)
		if d.Verdict != Allowed {
			t.Errorf("Classify(%q) = %+v, want allowed", cmd, d)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	cmd := "echo start && sudo dd if=/dev/zero of=x"
	first := Classify(cmd)
	for i := 0; i < 50; i++ {
		if got := Classify(cmd); got != first {
			t.Fatalf("iteration %d: %+v != %+v", i, got, first)
		}
	}
}

func TestClassify_BlockedSubstringAnywhere(t *testing.T) {
	for _, r := range BlockedRules {
		if r.re != nil {
			continue
		}
		for _, cmd := range []string{
			r.Pattern,
			"prefix " + r.Pattern + " suffix",
			strings.ToUpper(r.Pattern),
		} {
			if d := Classify(cmd); d.Verdict != Blocked {
				t.Errorf("Classify(%q) = %s, want blocked", cmd, d.Verdict)
			}
		}
	}
}

func TestGate_Check(t *testing.T) {
	_, err := DefaultGate.Check("rm -rf /")
	if !errors.Is(err, bridgeerrors.PolicyViolation) {
		t.Fatalf("expected policy violation, got %v", err)
	}
	d, err := DefaultGate.Check("sudo ls")
	if err != nil {
		t.Fatalf("warned command should pass Check: %v", err)
	}
	if d.Verdict != Warned {
		t.Errorf("verdict = %s, want warned", d.Verdict)
	}
}

func TestGate_CustomTables(t *testing.T) {
	g := Gate{Blocked: []Rule{substring("forbidden", CategoryPrivileged)}}
	if g.Classify("run FORBIDDEN thing").Verdict != Blocked {
		t.Error("custom blocked rule should match case-insensitively")
	}
	if g.Classify("sudo ls").Verdict != Allowed {
		t.Error("empty warn table should allow")
	}
}
