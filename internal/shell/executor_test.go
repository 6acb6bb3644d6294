package shell

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
	"github.com/mj1618/desktop-bridge/internal/logging"
	"github.com/mj1618/desktop-bridge/internal/policy"
)

// recordingRunner records invocations and returns canned output.
type recordingRunner struct {
	calls    []string
	dirs     []string
	stdout   string
	stderr   string
	exitCode int
	err      error
}

func (r *recordingRunner) Run(_ context.Context, _, command, dir string) ([]byte, []byte, int, error) {
	r.calls = append(r.calls, command)
	r.dirs = append(r.dirs, dir)
	if r.err != nil {
		return nil, nil, -1, r.err
	}
	return []byte(r.stdout), []byte(r.stderr), r.exitCode, nil
}

func TestTruncate_ShortUnchanged(t *testing.T) {
	for _, s := range []string{"", "hi", strings.Repeat("x", 10)} {
		got := Truncate(s, 10)
		if got != s {
			t.Errorf("Truncate(%q) = %q, want unchanged", s, got)
		}
		if Truncate(got, 10) != got {
			t.Errorf("Truncate not idempotent on %q", s)
		}
	}
}

func TestTruncate_AppendsOriginalLength(t *testing.T) {
	s := strings.Repeat("a", 25)
	got := Truncate(s, 10)
	if !strings.HasPrefix(got, strings.Repeat("a", 10)+"...") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "original length 25") {
		t.Errorf("marker should state original length, got %q", got)
	}
}

func TestTruncate_CountsRunes(t *testing.T) {
	s := strings.Repeat("ж", 12)
	got := Truncate(s, 10)
	if !strings.HasPrefix(got, strings.Repeat("ж", 10)+"...") {
		t.Errorf("should cut on rune boundary, got %q", got)
	}
	if !strings.Contains(got, "original length 12") {
		t.Errorf("marker should count runes, got %q", got)
	}
}

func TestResult_String(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"stdout only", Result{Stdout: "hi\n"}, "hi\n"},
		{"empty", Result{}, "no output"},
		{"stderr only", Result{Stderr: "boom"}, "error: boom"},
		{"both", Result{Stdout: "out", Stderr: "err"}, "out\nerror: err"},
		{"exit code", Result{Stderr: "nope", ExitCode: 2}, "exit code: 2\nerror: nope"},
		{"exit code no output", Result{ExitCode: 1}, "exit code: 1\n"},
	}
	for _, tt := range tests {
		if got := tt.res.String(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExecutor_TruncatesStreamsIndependently(t *testing.T) {
	r := &recordingRunner{stdout: strings.Repeat("o", 30), stderr: strings.Repeat("e", 30)}
	e := NewExecutor(WithRunner(r), WithLimits(20, 10))

	res, err := e.Execute(context.Background(), "noisy")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Stdout, strings.Repeat("o", 20)+"...") {
		t.Errorf("stdout not cut at 20: %q", res.Stdout)
	}
	if !strings.HasPrefix(res.Stderr, strings.Repeat("e", 10)+"...") {
		t.Errorf("stderr not cut at 10: %q", res.Stderr)
	}
}

func TestExecutor_LaunchFailure(t *testing.T) {
	r := &recordingRunner{err: errors.New("fork/exec /bin/bash: no such file")}
	e := NewExecutor(WithRunner(r))

	_, err := e.Execute(context.Background(), "echo hi")
	if !errors.Is(err, bridgeerrors.Execution) {
		t.Fatalf("expected execution error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("error should carry cause, got %q", err.Error())
	}
}

func TestExecutor_RestartResetsWorkDir(t *testing.T) {
	r := &recordingRunner{}
	e := NewExecutor(WithRunner(r))
	e.SetWorkDir("/tmp")
	if _, err := e.Execute(context.Background(), "pwd"); err != nil {
		t.Fatal(err)
	}
	e.Restart()
	if e.WorkDir() != "" {
		t.Errorf("WorkDir after Restart = %q, want empty", e.WorkDir())
	}
	if _, err := e.Execute(context.Background(), "pwd"); err != nil {
		t.Fatal(err)
	}
	if r.dirs[0] != "/tmp" || r.dirs[1] != "" {
		t.Errorf("dirs = %q", r.dirs)
	}
}

func TestExecRunner_EchoAndExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := NewExecutor(WithShell("sh"))

	res, err := e.Execute(context.Background(), "echo hi")
	if err != nil {
		t.Fatal(err)
	}
	if res.Stdout != "hi\n" || res.ExitCode != 0 {
		t.Errorf("got %+v", res)
	}

	res, err = e.Execute(context.Background(), "echo bad >&2; exit 3")
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 3 || res.Stderr != "bad\n" {
		t.Errorf("got %+v", res)
	}
	if !strings.HasPrefix(res.String(), "exit code: 3\n") {
		t.Errorf("display = %q", res.String())
	}
}

func TestService_BlockedNeverReachesRunner(t *testing.T) {
	r := &recordingRunner{stdout: "should not happen"}
	svc := NewService(policy.DefaultGate, NewExecutor(WithRunner(r)), logging.Discard())

	_, d, err := svc.Run(context.Background(), "rm -rf /")
	if !errors.Is(err, bridgeerrors.PolicyViolation) {
		t.Fatalf("expected policy violation, got %v", err)
	}
	if d.Verdict != policy.Blocked {
		t.Errorf("verdict = %s", d.Verdict)
	}
	if len(r.calls) != 0 {
		t.Errorf("runner invoked for blocked command: %q", r.calls)
	}
}

func TestService_WarnedStillRuns(t *testing.T) {
	r := &recordingRunner{stdout: "ok"}
	svc := NewService(policy.DefaultGate, NewExecutor(WithRunner(r)), logging.Discard())

	var seen []policy.Decision
	svc.OnDecision(func(d policy.Decision) { seen = append(seen, d) })

	res, d, err := svc.Run(context.Background(), "sudo ls")
	if err != nil {
		t.Fatal(err)
	}
	if d.Verdict != policy.Warned || res.Stdout != "ok" {
		t.Errorf("got %+v / %+v", d, res)
	}
	if len(r.calls) != 1 || r.calls[0] != "sudo ls" {
		t.Errorf("calls = %q", r.calls)
	}
	if len(seen) != 1 {
		t.Errorf("observer called %d times", len(seen))
	}
}

func TestService_PreviewEchoes(t *testing.T) {
	r := &recordingRunner{}
	svc := NewService(policy.DefaultGate, NewExecutor(WithRunner(r)), logging.Discard())
	if got := svc.Preview("rm -rf /"); got != "rm -rf /" {
		t.Errorf("Preview = %q", got)
	}
	if len(r.calls) != 0 {
		t.Error("preview must not run anything")
	}
}
