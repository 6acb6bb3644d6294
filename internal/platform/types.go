package platform

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "left"
	}
}

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// Direction is the phase of a button or key event.
type Direction int

const (
	Press Direction = iota
	Release
	// Click is a press immediately followed by a release.
	Click
)

func (d Direction) String() string {
	switch d {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "click"
	}
}

// Named keys understood by every Inputter.
const (
	KeyCommand   = "command"
	KeyControl   = "control"
	KeyAlt       = "alt"
	KeyShift     = "shift"
	KeyReturn    = "return"
	KeyTab       = "tab"
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeySpace     = "space"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyPageUp    = "pageup"
	KeyPageDown  = "pagedown"
)

// Key identifies a keyboard key. Named keys set Name; single characters
// set Rune and leave Name empty.
type Key struct {
	Name     string
	Rune     rune
	Modifier bool
}

// Named returns the key with the given name.
func Named(name string) Key {
	switch name {
	case KeyCommand, KeyControl, KeyAlt, KeyShift:
		return Key{Name: name, Modifier: true}
	}
	return Key{Name: name}
}

// Char returns the key that produces r.
func Char(r rune) Key {
	return Key{Rune: r}
}

func (k Key) String() string {
	if k.Name != "" {
		return k.Name
	}
	return string(k.Rune)
}

// Screen is the physical pixel size of a display.
type Screen struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}
