package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:43124" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestApplyEnv_OverridesPort(t *testing.T) {
	cfg := Default()
	env := map[string]string{PortEnv: "50001"}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 50001 {
		t.Errorf("Port = %d, want 50001", cfg.Port)
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(func(string) string { return "" }); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(func(string) string { return "http" }); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestValidate_RejectsNonLoopback(t *testing.T) {
	for _, host := range []string{"0.0.0.0", "192.168.1.5", "example.com", ""} {
		cfg := Default()
		cfg.Host = host
		if err := cfg.Validate(); err == nil {
			t.Errorf("host %q should be rejected", host)
		}
	}
	for _, host := range []string{"127.0.0.1", "::1", "localhost"} {
		cfg := Default()
		cfg.Host = host
		if err := cfg.Validate(); err != nil {
			t.Errorf("host %q should be accepted: %v", host, err)
		}
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv(PortEnv, "")
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	data := "port: 45000\nshell: sh\ncapture_quality: 80\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 45000 || cfg.Shell != "sh" || cfg.CaptureQuality != 80 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.StdoutLimit != DefaultStdoutLimit {
		t.Errorf("unset fields should keep defaults, got StdoutLimit=%d", cfg.StdoutLimit)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	t.Setenv(PortEnv, "46000")
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte("port: 45000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 46000 {
		t.Errorf("Port = %d, want 46000", cfg.Port)
	}
}
