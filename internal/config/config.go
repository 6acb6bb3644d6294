// Package config holds the bridge's runtime settings: built-in defaults,
// an optional YAML file and the port environment override.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the fixed loopback port the bridge listens on.
	DefaultPort = 43124
	// PortEnv overrides the listen port.
	PortEnv = "DESKTOP_BRIDGE_PORT"

	DefaultHost            = "127.0.0.1"
	DefaultCaptureMaxWidth = 1280
	DefaultCaptureQuality  = 60
	DefaultStdoutLimit     = 5000
	DefaultStderrLimit     = 2000
	DefaultMaxBodyBytes    = 1 << 20
)

// Config is the bridge configuration.
type Config struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	LogLevel        string `yaml:"log_level"`
	Shell           string `yaml:"shell"`
	StdoutLimit     int    `yaml:"stdout_limit"`
	StderrLimit     int    `yaml:"stderr_limit"`
	CaptureMaxWidth int    `yaml:"capture_max_width"`
	CaptureQuality  int    `yaml:"capture_quality"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
	Metrics         bool   `yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		LogLevel:        "info",
		Shell:           "bash",
		StdoutLimit:     DefaultStdoutLimit,
		StderrLimit:     DefaultStderrLimit,
		CaptureMaxWidth: DefaultCaptureMaxWidth,
		CaptureQuality:  DefaultCaptureQuality,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		Metrics:         true,
	}
}

// Load builds a Config from defaults, the YAML file at path (if non-empty)
// and the port environment variable, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv applies environment overrides using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	raw := strings.TrimSpace(getenv(PortEnv))
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", PortEnv, raw, err)
	}
	c.Port = port
	return nil
}

// Validate checks the configuration. The listen host must be a loopback
// address: only co-located processes may reach the bridge.
func (c Config) Validate() error {
	ip := net.ParseIP(c.Host)
	if c.Host == "localhost" {
		ip = net.IPv4(127, 0, 0, 1)
	}
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("host %q is not a loopback address", c.Host)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.StdoutLimit <= 0 || c.StderrLimit <= 0 {
		return fmt.Errorf("output limits must be positive")
	}
	if c.Shell == "" {
		return fmt.Errorf("shell must be set")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
