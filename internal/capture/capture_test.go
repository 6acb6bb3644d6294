package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/mj1618/desktop-bridge/internal/affinity"
	"github.com/mj1618/desktop-bridge/internal/platform"
)

type fakeDisplay struct {
	screen   platform.Screen
	frame    *image.RGBA
	err      error
	captures int
}

func (f *fakeDisplay) Primary() (platform.Screen, error) {
	if f.err != nil {
		return platform.Screen{}, f.err
	}
	return f.screen, nil
}

func (f *fakeDisplay) CaptureFrame() (*image.RGBA, error) {
	f.captures++
	return f.frame, nil
}

func newFake(w, h, frameScale int) *fakeDisplay {
	frame := image.NewRGBA(image.Rect(0, 0, w*frameScale, h*frameScale))
	for i := range frame.Pix {
		frame.Pix[i] = 0x80
	}
	frame.Set(0, 0, color.RGBA{R: 255, A: 255})
	return &fakeDisplay{screen: platform.Screen{Width: w, Height: h}, frame: frame}
}

func TestCapture_Downsamples(t *testing.T) {
	svc := NewService(newFake(2560, 1440, 1), nil)

	res, err := svc.Capture(1280, 60)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 1280 || res.Height != 720 {
		t.Errorf("encoded %dx%d, want 1280x720", res.Width, res.Height)
	}
	if res.ScreenWidth != 2560 || res.ScreenHeight != 1440 {
		t.Errorf("screen %dx%d", res.ScreenWidth, res.ScreenHeight)
	}
	if res.Format != "jpeg" {
		t.Errorf("format = %q", res.Format)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("decoded %dx%d", cfg.Width, cfg.Height)
	}
}

func TestCapture_NeverUpscales(t *testing.T) {
	svc := NewService(newFake(800, 600, 2), nil)

	res, err := svc.Capture(1280, 60)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 800 || res.Height != 600 {
		t.Errorf("encoded %dx%d, want 800x600", res.Width, res.Height)
	}
}

func TestCapture_Defaults(t *testing.T) {
	svc := NewService(newFake(1920, 1080, 1), affinity.Direct{})

	res, err := svc.Capture(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != DefaultMaxWidth || res.Height != 720 {
		t.Errorf("encoded %dx%d", res.Width, res.Height)
	}
	if res.Base64() == "" {
		t.Error("Base64 should not be empty")
	}
}

func TestCapture_QualityClamped(t *testing.T) {
	svc := NewService(newFake(100, 100, 1), nil)
	if _, err := svc.Capture(50, 500); err != nil {
		t.Fatalf("quality above 100 should clamp, got %v", err)
	}
}

func TestCapture_NoDisplay(t *testing.T) {
	f := &fakeDisplay{err: errors.New("no monitors")}
	_, err := NewService(f, nil).Capture(0, 0)
	if !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
	if f.captures != 0 {
		t.Error("frame should not be captured without a display")
	}
}

func TestCapture_ZeroSizedScreen(t *testing.T) {
	f := newFake(100, 100, 1)
	f.screen = platform.Screen{}
	_, err := NewService(f, nil).Capture(0, 0)
	if !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame, got %v", err)
	}
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		sw, sh, max int
		w, h        int
	}{
		{2560, 1600, 1280, 1280, 800},
		{1280, 800, 1280, 1280, 800},
		{640, 480, 1280, 640, 480},
		{4000, 1, 100, 100, 1},
		{3000, 2000, 7, 7, 4},
	}
	for _, tt := range tests {
		w, h := TargetSize(tt.sw, tt.sh, tt.max)
		if w != tt.w || h != tt.h {
			t.Errorf("TargetSize(%d,%d,%d) = %dx%d, want %dx%d", tt.sw, tt.sh, tt.max, w, h, tt.w, tt.h)
		}
		if w > tt.sw || w <= 0 || h <= 0 {
			t.Errorf("TargetSize(%d,%d,%d) out of bounds: %dx%d", tt.sw, tt.sh, tt.max, w, h)
		}
	}
}
