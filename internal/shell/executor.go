// Package shell runs commands through the system shell and renders their
// output for the orchestrator. It performs no filtering of its own; callers
// consult the policy gate first (see Service).
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"unicode/utf8"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

const (
	DefaultShell       = "bash"
	DefaultStdoutLimit = 5000
	DefaultStderrLimit = 2000
)

// Runner launches a shell command and reports its output and exit status.
// A non-nil error means the process could not be started or waited on;
// a non-zero exit status is not an error.
type Runner interface {
	Run(ctx context.Context, shell, command, dir string) (stdout, stderr []byte, exitCode int, err error)
}

// ExecRunner runs commands with os/exec as `<shell> -c <command>`.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, shell, command, dir string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, nil, -1, err
	}
	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

// Result is the captured outcome of one command.
type Result struct {
	Stdout   string `yaml:"stdout"    json:"stdout"`
	Stderr   string `yaml:"stderr"    json:"stderr"`
	ExitCode int    `yaml:"exit_code" json:"exit_code"`
}

// String composes the single display string returned to the orchestrator.
func (r Result) String() string {
	var sb strings.Builder
	sb.WriteString(r.Stdout)
	if r.Stderr != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("error: ")
		sb.WriteString(r.Stderr)
	}
	out := sb.String()
	if r.ExitCode != 0 {
		out = fmt.Sprintf("exit code: %d\n%s", r.ExitCode, out)
	}
	if out == "" {
		return "no output"
	}
	return out
}

// Truncate cuts s to limit characters and appends a marker with the
// original length. Strings within the limit are returned unchanged.
func Truncate(s string, limit int) string {
	n := utf8.RuneCountInString(s)
	if limit < 0 || n <= limit {
		return s
	}
	cut := 0
	for i := range s {
		if cut == limit {
			return fmt.Sprintf("%s...\n[truncated, original length %d chars]", s[:i], n)
		}
		cut++
	}
	return s
}

// Executor runs commands with per-session state (the working directory).
type Executor struct {
	runner      Runner
	shell       string
	stdoutLimit int
	stderrLimit int

	mu      sync.Mutex
	workDir string
}

// Option configures an Executor.
type Option func(*Executor)

// WithRunner replaces the subprocess layer.
func WithRunner(r Runner) Option {
	return func(e *Executor) { e.runner = r }
}

// WithShell sets the shell binary used for `-c`.
func WithShell(shell string) Option {
	return func(e *Executor) {
		if shell != "" {
			e.shell = shell
		}
	}
}

// WithLimits sets the stdout and stderr character budgets.
func WithLimits(stdout, stderr int) Option {
	return func(e *Executor) {
		if stdout > 0 {
			e.stdoutLimit = stdout
		}
		if stderr > 0 {
			e.stderrLimit = stderr
		}
	}
}

// NewExecutor creates an executor using bash and the default budgets.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		runner:      ExecRunner{},
		shell:       DefaultShell,
		stdoutLimit: DefaultStdoutLimit,
		stderrLimit: DefaultStderrLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs command and returns its truncated output. Launch failures
// are returned as EXECUTION errors.
func (e *Executor) Execute(ctx context.Context, command string) (Result, error) {
	e.mu.Lock()
	dir := e.workDir
	e.mu.Unlock()

	stdout, stderr, code, err := e.runner.Run(ctx, e.shell, command, dir)
	if err != nil {
		return Result{}, bridgeerrors.Wrap(err, bridgeerrors.ErrCodeExecution, "failed to run command")
	}
	return Result{
		Stdout:   Truncate(string(stdout), e.stdoutLimit),
		Stderr:   Truncate(string(stderr), e.stderrLimit),
		ExitCode: code,
	}, nil
}

// SetWorkDir sets the directory subsequent commands run in.
func (e *Executor) SetWorkDir(dir string) {
	e.mu.Lock()
	e.workDir = dir
	e.mu.Unlock()
}

// WorkDir returns the current session working directory ("" = inherit).
func (e *Executor) WorkDir() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workDir
}

// Restart resets session state to defaults.
func (e *Executor) Restart() {
	e.SetWorkDir("")
}
