//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation -framework Carbon
#include <CoreGraphics/CoreGraphics.h>
#include <Carbon/Carbon.h>

static CGPoint cg_cursor(void) {
    CGEventRef ev = CGEventCreate(NULL);
    CGPoint p = CGEventGetLocation(ev);
    CFRelease(ev);
    return p;
}

static int cg_move_mouse(float x, float y, int dragging) {
    CGPoint point = CGPointMake(x, y);
    CGEventType type = dragging ? kCGEventLeftMouseDragged : kCGEventMouseMoved;
    CGEventRef move = CGEventCreateMouseEvent(NULL, type, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

// button: 0=left, 1=right, 2=middle. down: 1=press, 0=release.
static int cg_mouse_button(int button, int down, int clickState) {
    CGPoint point = cg_cursor();
    CGEventType type;
    CGMouseButton cgButton;

    switch (button) {
        case 1:
            cgButton = kCGMouseButtonRight;
            type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonCenter;
            type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
            break;
        default:
            cgButton = kCGMouseButtonLeft;
            type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
            break;
    }
    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, point, cgButton);
    if (!ev) return -1;
    CGEventSetIntegerValueField(ev, kCGMouseEventClickState, clickState);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_key(CGKeyCode code, int down, CGEventFlags flags) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, code, down ? true : false);
    if (!ev) return -1;
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_unicode_key(UniChar ch, int down, CGEventFlags flags) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, 0, down ? true : false);
    if (!ev) return -1;
    CGEventKeyboardSetUnicodeString(ev, 1, &ch);
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_scroll(int dy) {
    CGEventRef scroll = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 1, dy);
    if (!scroll) return -1;
    CGEventPost(kCGHIDEventTap, scroll);
    CFRelease(scroll);
    return 0;
}
*/
import "C"

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/mj1618/desktop-bridge/internal/platform"
)

// macOS registers a second press within this window as a double click.
const multiClickInterval = 500 * time.Millisecond

// DarwinInputter implements platform.Inputter with CoreGraphics events.
// It must be driven from the main thread (see internal/affinity).
type DarwinInputter struct {
	leftDown  bool
	flags     uint64
	lastClick time.Time
	clicks    int
}

// NewInputter creates a new macOS inputter.
func NewInputter() *DarwinInputter {
	return &DarwinInputter{}
}

func (inp *DarwinInputter) MoveMouse(x, y int) error {
	dragging := C.int(0)
	if inp.leftDown {
		dragging = 1
	}
	if C.cg_move_mouse(C.float(x), C.float(y), dragging) != 0 {
		return fmt.Errorf("failed to move mouse to (%d, %d)", x, y)
	}
	return nil
}

func (inp *DarwinInputter) MouseButton(button platform.MouseButton, dir platform.Direction) error {
	cButton := C.int(0)
	switch button {
	case platform.MouseRight:
		cButton = 1
	case platform.MouseMiddle:
		cButton = 2
	}

	state := inp.clickState(dir)
	if dir == platform.Press || dir == platform.Click {
		if C.cg_mouse_button(cButton, 1, C.int(state)) != 0 {
			return fmt.Errorf("failed to press %s button", button)
		}
		if button == platform.MouseLeft {
			inp.leftDown = true
		}
	}
	if dir == platform.Release || dir == platform.Click {
		if C.cg_mouse_button(cButton, 0, C.int(state)) != 0 {
			return fmt.Errorf("failed to release %s button", button)
		}
		if button == platform.MouseLeft {
			inp.leftDown = false
		}
	}
	return nil
}

// clickState tracks consecutive clicks so a second click is seen as a
// double click by the receiving application.
func (inp *DarwinInputter) clickState(dir platform.Direction) int {
	if dir == platform.Release {
		if inp.clicks == 0 {
			return 1
		}
		return inp.clicks
	}
	now := time.Now()
	if now.Sub(inp.lastClick) <= multiClickInterval {
		inp.clicks++
	} else {
		inp.clicks = 1
	}
	inp.lastClick = now
	return inp.clicks
}

func (inp *DarwinInputter) Key(key platform.Key, dir platform.Direction) error {
	if key.Modifier {
		return inp.modifier(key, dir)
	}
	if code, ok := keyCode(key); ok {
		if dir != platform.Release && C.cg_key(code, 1, C.CGEventFlags(inp.flags)) != 0 {
			return fmt.Errorf("failed to press key %s", key)
		}
		if dir != platform.Press && C.cg_key(code, 0, C.CGEventFlags(inp.flags)) != 0 {
			return fmt.Errorf("failed to release key %s", key)
		}
		return nil
	}
	if key.Rune == 0 {
		return fmt.Errorf("unknown key: %q", key.Name)
	}
	for _, u := range utf16.Encode([]rune{key.Rune}) {
		if dir != platform.Release && C.cg_unicode_key(C.UniChar(u), 1, C.CGEventFlags(inp.flags)) != 0 {
			return fmt.Errorf("failed to press key %s", key)
		}
		if dir != platform.Press && C.cg_unicode_key(C.UniChar(u), 0, C.CGEventFlags(inp.flags)) != 0 {
			return fmt.Errorf("failed to release key %s", key)
		}
	}
	return nil
}

func (inp *DarwinInputter) modifier(key platform.Key, dir platform.Direction) error {
	m, ok := modifierMap[key.Name]
	if !ok {
		return fmt.Errorf("unknown modifier: %q", key.Name)
	}
	if dir != platform.Release {
		inp.flags |= m.flag
		if C.cg_key(m.code, 1, C.CGEventFlags(inp.flags)) != 0 {
			return fmt.Errorf("failed to press %s", key)
		}
	}
	if dir != platform.Press {
		inp.flags &^= m.flag
		if C.cg_key(m.code, 0, C.CGEventFlags(inp.flags)) != 0 {
			return fmt.Errorf("failed to release %s", key)
		}
	}
	return nil
}

func (inp *DarwinInputter) TypeText(text string) error {
	for _, u := range utf16.Encode([]rune(text)) {
		if C.cg_unicode_key(C.UniChar(u), 1, 0) != 0 || C.cg_unicode_key(C.UniChar(u), 0, 0) != 0 {
			return fmt.Errorf("failed to type text")
		}
	}
	return nil
}

func (inp *DarwinInputter) Scroll(dy int) error {
	if dy == 0 {
		return nil
	}
	// CoreGraphics wheel deltas are positive towards the top of the content.
	if C.cg_scroll(C.int(-dy)) != 0 {
		return fmt.Errorf("failed to scroll by %d", dy)
	}
	return nil
}

// keyCode resolves named keys and ASCII letters and digits to virtual key
// codes. Other characters are sent as unicode strings.
func keyCode(key platform.Key) (C.CGKeyCode, bool) {
	name := key.Name
	if name == "" {
		name = strings.ToLower(string(key.Rune))
	}
	code, ok := keyCodeMap[name]
	return C.CGKeyCode(code), ok
}

// macOS virtual key codes from Carbon Events.h.
var keyCodeMap = map[string]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	platform.KeyReturn: 0x24, platform.KeyTab: 0x30, platform.KeySpace: 0x31,
	platform.KeyBackspace: 0x33, platform.KeyDelete: 0x75, platform.KeyEscape: 0x35,
	platform.KeyUp: 0x7E, platform.KeyDown: 0x7D, platform.KeyLeft: 0x7B, platform.KeyRight: 0x7C,
	platform.KeyHome: 0x73, platform.KeyEnd: 0x77, platform.KeyPageUp: 0x74, platform.KeyPageDown: 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

type modifierKey struct {
	code C.CGKeyCode
	flag uint64
}

var modifierMap = map[string]modifierKey{
	platform.KeyCommand: {0x37, uint64(C.kCGEventFlagMaskCommand)},
	platform.KeyShift:   {0x38, uint64(C.kCGEventFlagMaskShift)},
	platform.KeyAlt:     {0x3A, uint64(C.kCGEventFlagMaskAlternate)},
	platform.KeyControl: {0x3B, uint64(C.kCGEventFlagMaskControl)},
}
