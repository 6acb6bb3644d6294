package autopilot

import (
	"strings"
	"unicode/utf8"

	"github.com/mj1618/desktop-bridge/internal/platform"
)

// keyAliases maps upper-cased key names to platform key names.
var keyAliases = map[string]string{
	"CMD":         platform.KeyCommand,
	"COMMAND":     platform.KeyCommand,
	"META":        platform.KeyCommand,
	"SUPER":       platform.KeyCommand,
	"CTRL":        platform.KeyControl,
	"CONTROL":     platform.KeyControl,
	"ALT":         platform.KeyAlt,
	"OPTION":      platform.KeyAlt,
	"SHIFT":       platform.KeyShift,
	"ENTER":       platform.KeyReturn,
	"RETURN":      platform.KeyReturn,
	"TAB":         platform.KeyTab,
	"ESC":         platform.KeyEscape,
	"ESCAPE":      platform.KeyEscape,
	"BACKSPACE":   platform.KeyBackspace,
	"DELETE":      platform.KeyDelete,
	"SPACE":       platform.KeySpace,
	"UP":          platform.KeyUp,
	"ARROW_UP":    platform.KeyUp,
	"DOWN":        platform.KeyDown,
	"ARROW_DOWN":  platform.KeyDown,
	"LEFT":        platform.KeyLeft,
	"ARROW_LEFT":  platform.KeyLeft,
	"RIGHT":       platform.KeyRight,
	"ARROW_RIGHT": platform.KeyRight,
	"HOME":        platform.KeyHome,
	"END":         platform.KeyEnd,
	"PAGEUP":      platform.KeyPageUp,
	"PAGE_UP":     platform.KeyPageUp,
	"PAGEDOWN":    platform.KeyPageDown,
	"PAGE_DOWN":   platform.KeyPageDown,
	"F1":          "f1",
	"F2":          "f2",
	"F3":          "f3",
	"F4":          "f4",
	"F5":          "f5",
	"F6":          "f6",
	"F7":          "f7",
	"F8":          "f8",
	"F9":          "f9",
	"F10":         "f10",
	"F11":         "f11",
	"F12":         "f12",
}

// ParseKey resolves a key name, case-insensitively. Any single character
// is accepted as a literal key.
func ParseKey(name string) (platform.Key, bool) {
	if n, ok := keyAliases[strings.ToUpper(name)]; ok {
		return platform.Named(n), true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return platform.Char(r), true
	}
	return platform.Key{}, false
}

// IsModifier reports whether name is a Cmd, Ctrl, Alt or Shift alias.
func IsModifier(name string) bool {
	k, ok := ParseKey(name)
	return ok && k.Modifier
}

// SplitCombo partitions keys into modifiers, in listed order, and the
// non-modifier key. Unknown names are dropped. If several non-modifier keys
// are given the last one wins.
func SplitCombo(keys []string) (mods []platform.Key, key platform.Key, ok bool) {
	for _, name := range keys {
		k, known := ParseKey(name)
		if !known {
			continue
		}
		if k.Modifier {
			mods = append(mods, k)
			continue
		}
		key, ok = k, true
	}
	return mods, key, ok
}
