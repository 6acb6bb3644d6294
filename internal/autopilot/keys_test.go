package autopilot

import (
	"testing"

	"github.com/mj1618/desktop-bridge/internal/platform"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want platform.Key
	}{
		{"cmd", platform.Named(platform.KeyCommand)},
		{"Meta", platform.Named(platform.KeyCommand)},
		{"CONTROL", platform.Named(platform.KeyControl)},
		{"option", platform.Named(platform.KeyAlt)},
		{"Return", platform.Named(platform.KeyReturn)},
		{"enter", platform.Named(platform.KeyReturn)},
		{"esc", platform.Named(platform.KeyEscape)},
		{"ARROW_LEFT", platform.Named(platform.KeyLeft)},
		{"page_down", platform.Named(platform.KeyPageDown)},
		{"F5", platform.Named("f5")},
		{"a", platform.Char('a')},
		{"Z", platform.Char('Z')},
		{"é", platform.Char('é')},
		{"+", platform.Char('+')},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.in)
		if !ok {
			t.Errorf("ParseKey(%q) not recognised", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "HYPER", "ab"} {
		if _, ok := ParseKey(bad); ok {
			t.Errorf("ParseKey(%q) should fail", bad)
		}
	}
}

func TestIsModifier(t *testing.T) {
	for _, k := range []string{"CMD", "command", "META", "ctrl", "Control", "ALT", "option", "shift"} {
		if !IsModifier(k) {
			t.Errorf("IsModifier(%q) = false", k)
		}
	}
	for _, k := range []string{"a", "enter", "tab", "xyz"} {
		if IsModifier(k) {
			t.Errorf("IsModifier(%q) = true", k)
		}
	}
}

func TestSplitCombo(t *testing.T) {
	mods, key, ok := SplitCombo([]string{"ctrl", "shift", "t"})
	if !ok || key != platform.Char('t') {
		t.Errorf("key = %+v, %v", key, ok)
	}
	if len(mods) != 2 || mods[0].Name != platform.KeyControl || mods[1].Name != platform.KeyShift {
		t.Errorf("mods = %+v", mods)
	}

	mods, _, ok = SplitCombo([]string{"cmd"})
	if ok || len(mods) != 1 {
		t.Errorf("modifier-only combo: mods=%+v ok=%v", mods, ok)
	}

	_, key, _ = SplitCombo([]string{"a", "b"})
	if key != platform.Char('b') {
		t.Errorf("last non-modifier should win, got %+v", key)
	}
}
