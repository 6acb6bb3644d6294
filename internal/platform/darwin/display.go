//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

static int cg_display_count(void) {
    uint32_t count = 0;
    if (CGGetActiveDisplayList(0, NULL, &count) != kCGErrorSuccess) return -1;
    return (int)count;
}

static void cg_primary_bounds(int *w, int *h) {
    CGRect b = CGDisplayBounds(CGMainDisplayID());
    *w = (int)b.size.width;
    *h = (int)b.size.height;
}

// Captures the main display into a caller-owned RGBA buffer of
// width*height*4 bytes. Returns 0 on success.
static int cg_capture_rgba(unsigned char **out, int *width, int *height) {
    CGImageRef img = CGDisplayCreateImage(CGMainDisplayID());
    if (!img) return -1;

    size_t w = CGImageGetWidth(img);
    size_t h = CGImageGetHeight(img);
    unsigned char *buf = calloc(w * h * 4, 1);
    if (!buf) {
        CGImageRelease(img);
        return -2;
    }

    CGColorSpaceRef cs = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(buf, w, h, 8, w * 4, cs,
        kCGImageAlphaPremultipliedLast | kCGBitmapByteOrder32Big);
    CGColorSpaceRelease(cs);
    if (!ctx) {
        free(buf);
        CGImageRelease(img);
        return -3;
    }
    CGContextDrawImage(ctx, CGRectMake(0, 0, w, h), img);
    CGContextRelease(ctx);
    CGImageRelease(img);

    *out = buf;
    *width = (int)w;
    *height = (int)h;
    return 0;
}
*/
import "C"

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/mj1618/desktop-bridge/internal/platform"
)

// DarwinDisplay implements platform.Display for the main display.
// Sizes are in global display points, the space CGEvent coordinates use.
type DarwinDisplay struct{}

// NewDisplay creates a new macOS display reader.
func NewDisplay() *DarwinDisplay {
	return &DarwinDisplay{}
}

func (d *DarwinDisplay) Primary() (platform.Screen, error) {
	if C.cg_display_count() <= 0 {
		return platform.Screen{}, fmt.Errorf("no active display")
	}
	var w, h C.int
	C.cg_primary_bounds(&w, &h)
	return platform.Screen{Width: int(w), Height: int(h)}, nil
}

func (d *DarwinDisplay) CaptureFrame() (*image.RGBA, error) {
	var buf *C.uchar
	var w, h C.int
	if rc := C.cg_capture_rgba(&buf, &w, &h); rc != 0 {
		return nil, fmt.Errorf("display capture failed (code %d); check Screen Recording permission in System Settings > Privacy & Security > Screen Recording", int(rc))
	}
	defer C.free(unsafe.Pointer(buf))

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	copy(img.Pix, C.GoBytes(unsafe.Pointer(buf), w*h*4))
	return img, nil
}
