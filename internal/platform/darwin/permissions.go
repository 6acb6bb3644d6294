//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreGraphics -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>

static int is_trusted() {
    return AXIsProcessTrusted();
}

static int can_record_screen() {
    return CGPreflightScreenCaptureAccess();
}

static void request_access() {
    CGRequestScreenCaptureAccess();
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
}
*/
import "C"

// DarwinPermissions implements platform.PermissionChecker.
type DarwinPermissions struct{}

// NewPermissions creates a new macOS permission checker.
func NewPermissions() *DarwinPermissions {
	return &DarwinPermissions{}
}

// ScreenRecording reports the Screen Recording grant without prompting.
func (DarwinPermissions) ScreenRecording() bool {
	return C.can_record_screen() != 0
}

// Accessibility reports whether event synthesis is permitted.
func (DarwinPermissions) Accessibility() bool {
	return C.is_trusted() != 0
}

// requestPermissions shows the system prompts for any missing grant.
func requestPermissions() {
	C.request_access()
}
