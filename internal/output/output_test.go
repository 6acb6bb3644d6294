package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Stdout   string `yaml:"stdout"    json:"stdout"`
	ExitCode int    `yaml:"exit_code" json:"exit_code"`
	HTML     string `yaml:"html"      json:"html"`
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintYAML(sample{Stdout: "hi\n", ExitCode: 2})
	})

	var got sample
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if got.Stdout != "hi\n" || got.ExitCode != 2 {
		t.Errorf("round trip = %+v", got)
	}
	if !strings.Contains(out, "exit_code: 2") {
		t.Errorf("expected yaml field names, got:\n%s", out)
	}
}

func TestPrintJSON_SingleLineNoEscape(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintJSON(sample{HTML: "<b>&</b>"})
	})

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected single line, got %q", out)
	}
	if !strings.Contains(out, "<b>&</b>") {
		t.Errorf("HTML should not be escaped: %q", out)
	}
	var got sample
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintPrettyJSON(sample{Stdout: "x"})
	})
	if !strings.Contains(out, "\n  \"stdout\"") {
		t.Errorf("expected indentation, got %q", out)
	}
}

func TestPrint_UsesOutputFormat(t *testing.T) {
	defer func() { OutputFormat = FormatYAML }()

	OutputFormat = FormatJSON
	out := captureStdout(t, func() error { return Print(sample{ExitCode: 1}) })
	if !strings.HasPrefix(out, "{") {
		t.Errorf("expected JSON, got %q", out)
	}

	OutputFormat = "xml"
	if err := Print(sample{}); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatYAML, true},
		{"yaml", FormatYAML, true},
		{"JSON", FormatJSON, true},
		{"agent", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
