// Package capture grabs the primary display and encodes a downsampled JPEG
// for the orchestrator. The returned dimensions let callers map image-space
// coordinates back to the screen.
package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"

	"github.com/mj1618/desktop-bridge/internal/affinity"
	"github.com/mj1618/desktop-bridge/internal/platform"
)

const (
	DefaultMaxWidth = 1280
	DefaultQuality  = 60
	Format          = "jpeg"
)

var (
	// ErrNoDisplay is returned when the primary display cannot be read.
	ErrNoDisplay = errors.New("no display found")
	// ErrInvalidFrame is returned for zero-sized screens or frames.
	ErrInvalidFrame = errors.New("display reported an empty frame")
	// ErrEncode is returned when JPEG encoding fails.
	ErrEncode = errors.New("failed to encode capture")
)

// Result is one encoded capture.
type Result struct {
	Data         []byte `yaml:"-"             json:"-"`
	Width        int    `yaml:"width"         json:"width"`
	Height       int    `yaml:"height"        json:"height"`
	ScreenWidth  int    `yaml:"screen_width"  json:"screen_width"`
	ScreenHeight int    `yaml:"screen_height" json:"screen_height"`
	Format       string `yaml:"format"        json:"format"`
}

// Base64 returns the encoded image in standard base64.
func (r Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}

// Service captures the primary display.
type Service struct {
	display platform.Display
	exec    affinity.Executor
}

// NewService creates a capture service. Display calls run on ex.
func NewService(display platform.Display, ex affinity.Executor) *Service {
	if ex == nil {
		ex = affinity.Direct{}
	}
	return &Service{display: display, exec: ex}
}

// Capture grabs the primary display and encodes it at most maxWidth wide.
// Non-positive arguments select the defaults; quality is clamped to 1..100.
func (s *Service) Capture(maxWidth, quality int) (Result, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 {
		quality = DefaultQuality
	}
	if quality > 100 {
		quality = 100
	}

	var screen platform.Screen
	var frame *image.RGBA
	err := s.exec.Run(func() error {
		var err error
		screen, err = s.display.Primary()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNoDisplay, err)
		}
		frame, err = s.display.CaptureFrame()
		return err
	})
	if err != nil {
		return Result{}, err
	}
	if screen.Width <= 0 || screen.Height <= 0 || frame == nil || frame.Bounds().Empty() {
		return Result{}, ErrInvalidFrame
	}

	w, h := TargetSize(screen.Width, screen.Height, maxWidth)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return Result{
		Data:         buf.Bytes(),
		Width:        w,
		Height:       h,
		ScreenWidth:  screen.Width,
		ScreenHeight: screen.Height,
		Format:       Format,
	}, nil
}

// TargetSize returns the encoded size for a screen of sw x sh: width is
// min(maxWidth, sw) and height keeps the aspect ratio, never below 1.
func TargetSize(sw, sh, maxWidth int) (int, int) {
	w := sw
	if maxWidth > 0 && maxWidth < w {
		w = maxWidth
	}
	h := sh * w / sw
	if h < 1 {
		h = 1
	}
	return w, h
}
