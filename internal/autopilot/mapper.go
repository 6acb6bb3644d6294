package autopilot

import "math"

// Mapper converts image-space points to screen space.
type Mapper struct {
	ScreenWidth  int
	ScreenHeight int
}

// Map scales (x, y) from an iw x ih image to the screen, rounding to the
// nearest pixel. A zero image dimension leaves the point unchanged.
func (m Mapper) Map(x, y, iw, ih int) (int, int) {
	if iw <= 0 || ih <= 0 {
		return x, y
	}
	sx := float64(x) / float64(iw) * float64(m.ScreenWidth)
	sy := float64(y) / float64(ih) * float64(m.ScreenHeight)
	return int(math.Round(sx)), int(math.Round(sy))
}
