package platform

import "image"

// Inputter synthesizes mouse and keyboard events. Coordinates are in
// screen space.
type Inputter interface {
	MoveMouse(x, y int) error
	MouseButton(button MouseButton, dir Direction) error
	Key(key Key, dir Direction) error
	// TypeText emits text as a sequence of character events.
	TypeText(text string) error
	// Scroll applies a vertical delta in lines; positive scrolls down.
	Scroll(dy int) error
}

// Display reads the primary display.
type Display interface {
	// Primary returns the physical size of the primary display, or an
	// error when no display is attached.
	Primary() (Screen, error)
	// CaptureFrame grabs one raw frame of the primary display.
	CaptureFrame() (*image.RGBA, error)
}

// PermissionChecker reports OS capability grants. Results reflect the
// moment of the call.
type PermissionChecker interface {
	ScreenRecording() bool
	Accessibility() bool
}
