package autopilot

import (
	"fmt"
	"strings"
)

// Computer-use action names.
const (
	ComputerMouseMove     = "mouse_move"
	ComputerLeftClick     = "left_click"
	ComputerRightClick    = "right_click"
	ComputerMiddleClick   = "middle_click"
	ComputerDoubleClick   = "double_click"
	ComputerLeftClickDrag = "left_click_drag"
	ComputerType          = "type"
	ComputerKey           = "key"
	ComputerScroll        = "scroll"
	ComputerScreenshot    = "screenshot"
)

// DefaultScrollAmount is used when a scroll omits scroll_amount.
const DefaultScrollAmount = 3

// ComputerAction is one step of a computer-use request. Coordinates are in
// screen space.
type ComputerAction struct {
	Action          string  `json:"action"`
	Coordinate      *[2]int `json:"coordinate,omitempty"`
	StartCoordinate *[2]int `json:"start_coordinate,omitempty"`
	Text            *string `json:"text,omitempty"`
	ScrollDirection *string `json:"scroll_direction,omitempty"`
	ScrollAmount    *int    `json:"scroll_amount,omitempty"`
	Key             *string `json:"key,omitempty"`
	Region          *[4]int `json:"region,omitempty"`
}

// Summary describes a batch of n computer actions.
func Summary(n int) string {
	if n == 1 {
		return "1 action"
	}
	return fmt.Sprintf("%d actions", n)
}

// ToAction converts a computer-use step to an autopilot Action.
func (c ComputerAction) ToAction() (Action, error) {
	a := Action{}
	if c.Coordinate != nil {
		a.X, a.Y = Int(c.Coordinate[0]), Int(c.Coordinate[1])
	}

	switch c.Action {
	case ComputerMouseMove:
		a.Type = TypeMove
	case ComputerLeftClick:
		a.Type, a.Button = TypeClick, "left"
	case ComputerRightClick:
		a.Type, a.Button = TypeClick, "right"
	case ComputerMiddleClick:
		a.Type, a.Button = TypeClick, "middle"
	case ComputerDoubleClick:
		a.Type = TypeDoubleClick
	case ComputerLeftClickDrag:
		if c.StartCoordinate == nil || c.Coordinate == nil {
			return Action{}, invalid("left_click_drag requires start_coordinate and coordinate")
		}
		a = Action{
			Type:   TypeDrag,
			StartX: Int(c.StartCoordinate[0]),
			StartY: Int(c.StartCoordinate[1]),
			EndX:   Int(c.Coordinate[0]),
			EndY:   Int(c.Coordinate[1]),
		}
	case ComputerType:
		a = Action{Type: TypeText, Text: c.Text}
	case ComputerKey:
		combo := c.Key
		if combo == nil {
			combo = c.Text
		}
		if combo == nil {
			return Action{}, invalid("key requires key")
		}
		a = Action{Type: TypeKey, Keys: splitKeys(*combo)}
	case ComputerScroll:
		dy, err := scrollDelta(c.ScrollDirection, c.ScrollAmount)
		if err != nil {
			return Action{}, err
		}
		a = Action{Type: TypeScroll, DY: Int(dy)}
	default:
		return Action{}, invalid("unknown action: %q", c.Action)
	}
	return a, a.Validate()
}

// splitKeys splits "ctrl+shift+t" into its parts. A lone "+" is the plus key.
func splitKeys(combo string) []string {
	if combo == "+" {
		return []string{"+"}
	}
	parts := strings.Split(combo, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// scrollDelta converts a direction and amount to a signed line delta,
// positive scrolling down.
func scrollDelta(direction *string, amount *int) (int, error) {
	n := DefaultScrollAmount
	if amount != nil {
		n = *amount
	}
	dir := "down"
	if direction != nil {
		dir = strings.ToLower(*direction)
	}
	switch dir {
	case "down":
		return n, nil
	case "up":
		return -n, nil
	default:
		return 0, invalid("unsupported scroll direction: %q", dir)
	}
}

// Screenshotter produces a capture for the screenshot action, returned as
// the step's result string.
type Screenshotter func() (string, error)

// Computer runs computer-use batches through an Executor.
type Computer struct {
	exec       *Executor
	screenshot Screenshotter
}

// NewComputer wraps exec. screenshot may be nil, in which case the
// screenshot action reports an error.
func NewComputer(exec *Executor, screenshot Screenshotter) *Computer {
	return &Computer{exec: exec, screenshot: screenshot}
}

// Run performs each action in order and returns one result per action.
// A failing action yields "error: <reason>" and does not stop the batch.
func (c *Computer) Run(actions []ComputerAction) []string {
	results := make([]string, 0, len(actions))
	for _, ca := range actions {
		out, err := c.runOne(ca)
		if err != nil {
			results = append(results, "error: "+err.Error())
			continue
		}
		results = append(results, out)
	}
	return results
}

func (c *Computer) runOne(ca ComputerAction) (string, error) {
	if ca.Action == ComputerScreenshot {
		if c.screenshot == nil {
			return "", fmt.Errorf("screenshot is not available")
		}
		return c.screenshot()
	}
	a, err := ca.ToAction()
	if err != nil {
		return "", err
	}
	if _, err := c.exec.Execute(a, 0, 0); err != nil {
		return "", err
	}
	return ca.Action, nil
}
