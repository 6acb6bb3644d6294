package shell

import (
	"context"
	"log/slog"

	"github.com/mj1618/desktop-bridge/internal/policy"
)

// Service puts the policy gate in front of an Executor. Blocked commands
// never reach the executor; warned commands are logged and run.
type Service struct {
	gate     policy.Gate
	executor *Executor
	logger   *slog.Logger
	observe  func(policy.Decision)
}

// NewService wires gate, executor and logger together.
func NewService(gate policy.Gate, executor *Executor, logger *slog.Logger) *Service {
	return &Service{gate: gate, executor: executor, logger: logger}
}

// OnDecision registers a callback invoked with every classification.
func (s *Service) OnDecision(fn func(policy.Decision)) {
	s.observe = fn
}

// Executor returns the underlying executor.
func (s *Service) Executor() *Executor {
	return s.executor
}

// Preview returns the command unmodified. It never classifies or runs it.
func (s *Service) Preview(command string) string {
	return command
}

// Run classifies command and executes it unless blocked.
func (s *Service) Run(ctx context.Context, command string) (Result, policy.Decision, error) {
	d, err := s.gate.Check(command)
	if s.observe != nil {
		s.observe(d)
	}
	if err != nil {
		s.logger.Warn("shell command blocked", "pattern", d.Pattern, "category", d.Category, "command", command)
		return Result{}, d, err
	}
	if d.Verdict == policy.Warned {
		s.logger.Warn("shell command warning", "pattern", d.Pattern, "category", d.Category, "command", command)
	}
	s.logger.Info("executing shell command", "command", command)

	res, err := s.executor.Execute(ctx, command)
	if err != nil {
		s.logger.Error("shell command failed to start", "command", command, "error", err)
		return Result{}, d, err
	}
	return res, d, nil
}
