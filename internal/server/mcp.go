package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-bridge/internal/autopilot"
	"github.com/mj1618/desktop-bridge/internal/version"
)

// MCP transports.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// NewMCPServer exposes the bridge operations as MCP tools backed by s.
func NewMCPServer(s *Server) *mcpserver.MCPServer {
	m := mcpserver.NewMCPServer("desktop-bridge", version.Version)

	m.AddTool(
		mcp.NewTool("capture",
			mcp.WithDescription("Capture the primary display as a downsampled JPEG. Returns the image plus encoded and physical screen dimensions for coordinate mapping."),
			mcp.WithNumber("max_width", mcp.Description("Maximum encoded width in pixels (default: 1280)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 60)")),
		),
		s.toolCapture,
	)

	m.AddTool(
		mcp.NewTool("act",
			mcp.WithDescription("Perform one input action. Points are in the space of the image the caller last saw and are scaled to the screen."),
			mcp.WithObject("action", mcp.Description("Action object: {type: move_mouse|click|double_click|drag|type|key|scroll, x, y, button, start_x, start_y, end_x, end_y, text, keys, dy}"), mcp.Required()),
			mcp.WithNumber("image_width", mcp.Description("Width of the image the coordinates refer to (0 = screen coordinates)")),
			mcp.WithNumber("image_height", mcp.Description("Height of the image the coordinates refer to (0 = screen coordinates)")),
		),
		s.toolAct,
	)

	m.AddTool(
		mcp.NewTool("computer",
			mcp.WithDescription("Run a batch of computer-use actions in screen coordinates: mouse_move, left_click, right_click, middle_click, double_click, left_click_drag, type, key, scroll, screenshot"),
			mcp.WithArray("actions", mcp.Description("Array of {action, coordinate, start_coordinate, text, scroll_direction, scroll_amount, key} objects"), mcp.Required()),
		),
		s.toolComputer,
	)

	m.AddTool(
		mcp.NewTool("shell",
			mcp.WithDescription("Run a shell command. Destructive commands are blocked by policy; output is truncated."),
			mcp.WithString("command", mcp.Description("Command passed to the shell with -c"), mcp.Required()),
			mcp.WithString("work_dir", mcp.Description("Working directory for this and later commands")),
		),
		s.toolShell,
	)

	m.AddTool(
		mcp.NewTool("shell_restart",
			mcp.WithDescription("Reset the shell session, including its working directory"),
		),
		s.toolShellRestart,
	)

	m.AddTool(
		mcp.NewTool("shell_preview",
			mcp.WithDescription("Echo a shell command without running it"),
			mcp.WithString("command", mcp.Description("Command to preview"), mcp.Required()),
		),
		s.toolShellPreview,
	)

	m.AddTool(
		mcp.NewTool("permissions",
			mcp.WithDescription("Report Screen Recording and Accessibility permission status"),
		),
		s.toolPermissions,
	)

	return m
}

// ServeMCP runs the MCP server over the given transport. port is used by
// streamable-http only and is always bound on the configured loopback host.
func ServeMCP(s *Server, transport string, port int) error {
	m := NewMCPServer(s)
	switch transport {
	case TransportStdio:
		return mcpserver.ServeStdio(m)
	case TransportStreamableHTTP:
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)
		return mcpserver.NewStreamableHTTPServer(m).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

// decodeArg converts a loosely typed tool argument into dst.
func decodeArg(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func intArg(params map[string]any, key string, def int) int {
	switch n := params[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return def
}

func stringArg(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

func textResult(v any) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) toolCapture(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	resp, err := s.Capture(CaptureRequest{
		MaxWidth: intArg(params, "max_width", 0),
		Quality:  intArg(params, "quality", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	meta := fmt.Sprintf("width: %d\nheight: %d\nscreen_width: %d\nscreen_height: %d\n",
		resp.Width, resp.Height, resp.ScreenWidth, resp.ScreenHeight)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: meta},
			mcp.ImageContent{Type: "image", Data: resp.ImageBase64, MIMEType: "image/jpeg"},
		},
	}, nil
}

func (s *Server) toolAct(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	var action autopilot.Action
	if err := decodeArg(params["action"], &action); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action: %v", err)), nil
	}
	resp, err := s.Act(ActRequest{
		Action:      action,
		ImageWidth:  intArg(params, "image_width", 0),
		ImageHeight: intArg(params, "image_height", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(resp)
}

func (s *Server) toolComputer(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req ComputerRequest
	if err := decodeArg(request.GetArguments()["actions"], &req.Actions); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid actions: %v", err)), nil
	}
	resp, err := s.ExecuteComputer(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(resp)
}

func (s *Server) toolShell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	resp, err := s.ExecuteShell(ctx, ShellRequest{Command: stringArg(args, "command"), WorkDir: stringArg(args, "work_dir")})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resp.Output), nil
}

func (s *Server) toolShellPreview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp := s.PreviewShell(ShellRequest{Command: stringArg(request.GetArguments(), "command")})
	return mcp.NewToolResultText(resp.Output), nil
}

func (s *Server) toolShellRestart(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.RestartShell().Output), nil
}

func (s *Server) toolPermissions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.Permissions()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(status)
}
