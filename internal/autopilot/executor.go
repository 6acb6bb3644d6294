package autopilot

import (
	"errors"

	"github.com/mj1618/desktop-bridge/internal/affinity"
	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
	"github.com/mj1618/desktop-bridge/internal/platform"
)

// Executor performs Actions against an Inputter. All input calls run on
// the affinity executor.
type Executor struct {
	input  platform.Inputter
	mapper Mapper
	exec   affinity.Executor
}

// NewExecutor resolves the primary screen size from p.Display and returns
// an executor bound to it.
func NewExecutor(p *platform.Provider, ex affinity.Executor) (*Executor, error) {
	if ex == nil {
		ex = affinity.Direct{}
	}
	screen, err := affinity.Call(ex, p.Display.Primary)
	if err != nil {
		return nil, bridgeerrors.Wrap(err, bridgeerrors.ErrCodeCapabilityUnavailable, "cannot read primary display")
	}
	return New(p.Inputter, Mapper{ScreenWidth: screen.Width, ScreenHeight: screen.Height}, ex), nil
}

// New returns an executor with a known screen mapping.
func New(input platform.Inputter, mapper Mapper, ex affinity.Executor) *Executor {
	if ex == nil {
		ex = affinity.Direct{}
	}
	return &Executor{input: input, mapper: mapper, exec: ex}
}

// Mapper returns the executor's coordinate mapping.
func (e *Executor) Mapper() Mapper {
	return e.mapper
}

// Execute validates and performs a, mapping points from an iw x ih image.
// It returns the action label on success.
func (e *Executor) Execute(a Action, iw, ih int) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	err := e.exec.Run(func() error {
		return e.perform(a, iw, ih)
	})
	if err != nil {
		var pe *affinity.PanicError
		if errors.As(err, &pe) {
			return "", err
		}
		return "", bridgeerrors.Wrap(err, bridgeerrors.ErrCodeExecution, string(a.Type)+" failed")
	}
	return string(a.Type), nil
}

func (e *Executor) perform(a Action, iw, ih int) error {
	switch a.Type {
	case TypeMove:
		x, y, _ := a.Point()
		return e.moveTo(x, y, iw, ih)

	case TypeClick:
		if x, y, ok := a.Point(); ok {
			if err := e.moveTo(x, y, iw, ih); err != nil {
				return err
			}
		}
		button, err := platform.ParseMouseButton(a.Button)
		if err != nil {
			button = platform.MouseLeft
		}
		return e.input.MouseButton(button, platform.Click)

	case TypeDoubleClick:
		if x, y, ok := a.Point(); ok {
			if err := e.moveTo(x, y, iw, ih); err != nil {
				return err
			}
		}
		for i := 0; i < 2; i++ {
			if err := e.input.MouseButton(platform.MouseLeft, platform.Click); err != nil {
				return err
			}
		}
		return nil

	case TypeDrag:
		return e.drag(*a.StartX, *a.StartY, *a.EndX, *a.EndY, iw, ih)

	case TypeText:
		return e.input.TypeText(*a.Text)

	case TypeKey:
		return e.combo(a.Keys)

	case TypeScroll:
		if a.DY == nil || *a.DY == 0 {
			return nil
		}
		return e.input.Scroll(*a.DY)
	}
	return nil
}

func (e *Executor) moveTo(x, y, iw, ih int) error {
	sx, sy := e.mapper.Map(x, y, iw, ih)
	return e.input.MoveMouse(sx, sy)
}

// drag moves to the start, presses, moves to the end and releases. The
// button is released if the second move fails.
func (e *Executor) drag(x0, y0, x1, y1, iw, ih int) error {
	if err := e.moveTo(x0, y0, iw, ih); err != nil {
		return err
	}
	if err := e.input.MouseButton(platform.MouseLeft, platform.Press); err != nil {
		return err
	}
	if err := e.moveTo(x1, y1, iw, ih); err != nil {
		_ = e.input.MouseButton(platform.MouseLeft, platform.Release)
		return err
	}
	return e.input.MouseButton(platform.MouseLeft, platform.Release)
}

// combo presses modifiers in order, clicks the key and releases the
// modifiers in reverse. Pressed modifiers are released on failure.
func (e *Executor) combo(keys []string) error {
	mods, key, hasKey := SplitCombo(keys)

	pressed := 0
	release := func() error {
		var first error
		for i := pressed - 1; i >= 0; i-- {
			if err := e.input.Key(mods[i], platform.Release); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	for _, m := range mods {
		if err := e.input.Key(m, platform.Press); err != nil {
			_ = release()
			return err
		}
		pressed++
	}
	if hasKey {
		if err := e.input.Key(key, platform.Click); err != nil {
			_ = release()
			return err
		}
	}
	return release()
}
