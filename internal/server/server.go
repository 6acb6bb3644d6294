// Package server exposes the bridge operations to co-located processes:
// a loopback HTTP API for the orchestrator and an MCP tool server. Both
// transports call the same Server methods, which serialise every request.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mj1618/desktop-bridge/internal/affinity"
	"github.com/mj1618/desktop-bridge/internal/autopilot"
	"github.com/mj1618/desktop-bridge/internal/capture"
	"github.com/mj1618/desktop-bridge/internal/config"
	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
	"github.com/mj1618/desktop-bridge/internal/logging"
	"github.com/mj1618/desktop-bridge/internal/platform"
	"github.com/mj1618/desktop-bridge/internal/policy"
	"github.com/mj1618/desktop-bridge/internal/shell"
)

// ProviderFunc acquires the platform backends for one request.
type ProviderFunc func() (*platform.Provider, error)

// Server holds the bridge's request-scoped operations.
type Server struct {
	cfg      config.Config
	provider ProviderFunc
	shell    *shell.Service
	exec     affinity.Executor
	logger   *slog.Logger

	// mu serialises requests; input synthesis on one pointer device
	// cannot interleave.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithProvider overrides platform.NewProvider.
func WithProvider(fn ProviderFunc) Option {
	return func(s *Server) { s.provider = fn }
}

// WithShell overrides the shell service built from the config.
func WithShell(svc *shell.Service) Option {
	return func(s *Server) { s.shell = svc }
}

// WithExecutor overrides affinity.Default.
func WithExecutor(ex affinity.Executor) Option {
	return func(s *Server) { s.exec = ex }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server from cfg.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		provider: platform.NewProvider,
		exec:     affinity.Default(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.shell == nil {
		executor := shell.NewExecutor(
			shell.WithShell(cfg.Shell),
			shell.WithLimits(cfg.StdoutLimit, cfg.StderrLimit),
		)
		s.shell = shell.NewService(policy.DefaultGate, executor, s.logger)
	}
	s.shell.OnDecision(func(d policy.Decision) {
		policyDecisions.WithLabelValues(d.Verdict.String()).Inc()
	})
	return s
}

// ComputerRequest is a batch of computer-use actions.
type ComputerRequest struct {
	Actions []autopilot.ComputerAction `json:"actions"`
}

// ComputerResponse summarises a batch and carries one result per action.
type ComputerResponse struct {
	Summary string   `json:"summary"`
	Results []string `json:"results"`
}

// ShellRequest carries one shell command. A non-empty WorkDir becomes the
// session working directory for this and later commands.
type ShellRequest struct {
	Command string `json:"command"`
	WorkDir string `json:"work_dir,omitempty"`
}

// ShellResponse carries the composed command output.
type ShellResponse struct {
	Output string `json:"output"`
}

// CaptureRequest selects the capture size and quality. Zero values use
// the configured defaults.
type CaptureRequest struct {
	MaxWidth int `json:"max_width,omitempty"`
	Quality  int `json:"quality,omitempty"`
}

// CaptureResponse is an encoded capture.
type CaptureResponse struct {
	ImageBase64  string `json:"image_base64"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
	Format       string `json:"format"`
}

// ActRequest is one autopilot action with the size of the image its
// coordinates refer to.
type ActRequest struct {
	Action      autopilot.Action `json:"action"`
	ImageWidth  int              `json:"image_width"`
	ImageHeight int              `json:"image_height"`
}

// ActResponse reports a performed action.
type ActResponse struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

// PreviewComputer summarises a batch without touching the system.
func (s *Server) PreviewComputer(req ComputerRequest) ComputerResponse {
	return ComputerResponse{Summary: autopilot.Summary(len(req.Actions)), Results: []string{}}
}

// ExecuteComputer runs a computer-use batch.
func (s *Server) ExecuteComputer(req ComputerRequest) (ComputerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.acquire()
	if err != nil {
		return ComputerResponse{}, err
	}
	exec, err := autopilot.NewExecutor(p, s.exec)
	if err != nil {
		return ComputerResponse{}, err
	}
	capt := capture.NewService(p.Display, s.exec)
	computer := autopilot.NewComputer(exec, func() (string, error) {
		res, err := capt.Capture(s.cfg.CaptureMaxWidth, s.cfg.CaptureQuality)
		if err != nil {
			return "", err
		}
		return res.Base64(), nil
	})

	results := computer.Run(req.Actions)
	for i, a := range req.Actions {
		outcome := "ok"
		if strings.HasPrefix(results[i], "error: ") {
			outcome = "error"
		}
		actionsTotal.WithLabelValues(a.Action, outcome).Inc()
	}
	return ComputerResponse{Summary: autopilot.Summary(len(req.Actions)), Results: results}, nil
}

// PreviewShell echoes the command unmodified.
func (s *Server) PreviewShell(req ShellRequest) ShellResponse {
	return ShellResponse{Output: s.shell.Preview(req.Command)}
}

// ExecuteShell runs the command through the policy gate.
func (s *Server) ExecuteShell(ctx context.Context, req ShellRequest) (ShellResponse, error) {
	if req.Command == "" {
		return ShellResponse{}, bridgeerrors.New(bridgeerrors.ErrCodeValidation, "command is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.WorkDir != "" {
		s.shell.Executor().SetWorkDir(req.WorkDir)
	}
	res, _, err := s.shell.Run(ctx, req.Command)
	if err != nil {
		return ShellResponse{}, err
	}
	return ShellResponse{Output: res.String()}, nil
}

// RestartShell resets the shell session to its defaults.
func (s *Server) RestartShell() ShellResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shell.Executor().Restart()
	s.logger.Info("shell session restarted")
	return ShellResponse{Output: "shell session restarted"}
}

// Capture grabs the primary display.
func (s *Server) Capture(req CaptureRequest) (CaptureResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.acquire()
	if err != nil {
		return CaptureResponse{}, err
	}
	maxWidth, quality := req.MaxWidth, req.Quality
	if maxWidth <= 0 {
		maxWidth = s.cfg.CaptureMaxWidth
	}
	if quality <= 0 {
		quality = s.cfg.CaptureQuality
	}

	res, err := capture.NewService(p.Display, s.exec).Capture(maxWidth, quality)
	if err != nil {
		var pe *affinity.PanicError
		if errors.As(err, &pe) {
			return CaptureResponse{}, err
		}
		return CaptureResponse{}, bridgeerrors.Wrap(err, bridgeerrors.ErrCodeExecution, "capture failed")
	}
	return CaptureResponse{
		ImageBase64:  res.Base64(),
		Width:        res.Width,
		Height:       res.Height,
		ScreenWidth:  res.ScreenWidth,
		ScreenHeight: res.ScreenHeight,
		Format:       res.Format,
	}, nil
}

// Act performs one autopilot action.
func (s *Server) Act(req ActRequest) (ActResponse, error) {
	if err := req.Action.Validate(); err != nil {
		return ActResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.acquire()
	if err != nil {
		return ActResponse{}, err
	}
	exec, err := autopilot.NewExecutor(p, s.exec)
	if err != nil {
		return ActResponse{}, err
	}
	label, err := exec.Execute(req.Action, req.ImageWidth, req.ImageHeight)
	if err != nil {
		actionsTotal.WithLabelValues(string(req.Action.Type), "error").Inc()
		return ActResponse{}, err
	}
	actionsTotal.WithLabelValues(label, "ok").Inc()
	return ActResponse{Status: "ok", Summary: label}, nil
}

// Permissions reports the current OS grants.
func (s *Server) Permissions() (platform.PermissionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.acquire()
	if err != nil {
		return platform.PermissionStatus{}, err
	}
	if p.Permissions == nil {
		return platform.PermissionStatus{}, bridgeerrors.New(bridgeerrors.ErrCodeCapabilityUnavailable, "permission checks unavailable")
	}
	return affinity.Call(s.exec, func() (platform.PermissionStatus, error) {
		return platform.CheckPermissions(p.Permissions), nil
	})
}

// acquire obtains the platform backends. Missing backends are a
// capability error, not an execution failure.
func (s *Server) acquire() (*platform.Provider, error) {
	p, err := s.provider()
	if err != nil {
		return nil, bridgeerrors.Wrap(err, bridgeerrors.ErrCodeCapabilityUnavailable, "platform unavailable")
	}
	if p == nil || p.Inputter == nil || p.Display == nil {
		return nil, bridgeerrors.New(bridgeerrors.ErrCodeCapabilityUnavailable, "platform unavailable")
	}
	return p, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr()
}
