// Package autopilot turns orchestrator actions into input events. Points
// arrive in image space (relative to the last capture) and are mapped to
// screen space before any OS call.
package autopilot

import (
	"errors"
	"fmt"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

// ActionType is the tag of an Action.
type ActionType string

const (
	TypeMove        ActionType = "move_mouse"
	TypeClick       ActionType = "click"
	TypeDoubleClick ActionType = "double_click"
	TypeDrag        ActionType = "drag"
	TypeText        ActionType = "type"
	TypeKey         ActionType = "key"
	TypeScroll      ActionType = "scroll"
)

// ErrUnknownAction is returned for action types outside the supported set.
var ErrUnknownAction = errors.New("unknown action")

// Action is one autopilot step. Only the fields relevant to Type are read.
type Action struct {
	Type   ActionType `json:"type"                yaml:"type"`
	X      *int       `json:"x,omitempty"         yaml:"x,omitempty"`
	Y      *int       `json:"y,omitempty"         yaml:"y,omitempty"`
	Button string     `json:"button,omitempty"    yaml:"button,omitempty"`
	StartX *int       `json:"start_x,omitempty"   yaml:"start_x,omitempty"`
	StartY *int       `json:"start_y,omitempty"   yaml:"start_y,omitempty"`
	EndX   *int       `json:"end_x,omitempty"     yaml:"end_x,omitempty"`
	EndY   *int       `json:"end_y,omitempty"     yaml:"end_y,omitempty"`
	Text   *string    `json:"text,omitempty"      yaml:"text,omitempty"`
	Keys   []string   `json:"keys,omitempty"      yaml:"keys,omitempty"`
	DY     *int       `json:"dy,omitempty"        yaml:"dy,omitempty"`
}

// Validate checks that the fields required by the action's type are present.
//
//	move_mouse     x, y
//	click          nothing; a partial point clicks in place
//	double_click   nothing; a partial point clicks in place
//	drag           start_x, start_y, end_x, end_y
//	type           text
//	key            keys (may be empty)
//	scroll         nothing; dy defaults to 0
func (a Action) Validate() error {
	switch a.Type {
	case TypeMove:
		if a.X == nil || a.Y == nil {
			return invalid("move_mouse requires x and y")
		}
	case TypeClick, TypeDoubleClick:
	case TypeDrag:
		if a.StartX == nil || a.StartY == nil || a.EndX == nil || a.EndY == nil {
			return invalid("drag requires start_x, start_y, end_x and end_y")
		}
	case TypeText:
		if a.Text == nil {
			return invalid("type requires text")
		}
	case TypeKey:
		if a.Keys == nil {
			return invalid("key requires keys")
		}
	case TypeScroll:
	default:
		return bridgeerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownAction, a.Type), bridgeerrors.ErrCodeValidation, "")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return bridgeerrors.Newf(bridgeerrors.ErrCodeValidation, format, args...)
}

// Point returns the action's point, if both coordinates are set.
func (a Action) Point() (x, y int, ok bool) {
	if a.X == nil || a.Y == nil {
		return 0, 0, false
	}
	return *a.X, *a.Y, true
}

// Int returns a pointer to v, for building Actions in code.
func Int(v int) *int {
	return &v
}

// String returns a pointer to s, for building Actions in code.
func String(s string) *string {
	return &s
}
