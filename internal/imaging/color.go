package imaging

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color as a lower-case "#rrggbb" string.
func (c RGBColor) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// ParseHexColor parses "#rrggbb" (case-insensitive) into an RGBColor.
func ParseHexColor(hex string) (RGBColor, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// IsBackground reports whether c counts as white background for the given
// threshold. Every channel must be strictly greater than the threshold; a
// channel exactly at the threshold makes the pixel foreground.
func IsBackground(c RGBColor, whiteThreshold int) bool {
	return int(c.R) > whiteThreshold && int(c.G) > whiteThreshold && int(c.B) > whiteThreshold
}

// ColorSum accumulates pixel colors for computing an arithmetic mean.
//
// The zero value is an empty accumulator ready for use.
type ColorSum struct {
	r, g, b uint64
	n       int
}

// Add accumulates one pixel.
func (s *ColorSum) Add(c RGBColor) {
	s.r += uint64(c.R)
	s.g += uint64(c.G)
	s.b += uint64(c.B)
	s.n++
}

// Count returns the number of accumulated pixels.
func (s *ColorSum) Count() int { return s.n }

// Mean returns the per-channel mean as floats. All channels are zero when
// nothing has been accumulated.
func (s *ColorSum) Mean() (r, g, b float64) {
	if s.n == 0 {
		return 0, 0, 0
	}
	n := float64(s.n)
	return float64(s.r) / n, float64(s.g) / n, float64(s.b) / n
}

// AboveThreshold reports whether every channel of the mean is strictly
// greater than whiteThreshold. An empty accumulator is never above.
func (s *ColorSum) AboveThreshold(whiteThreshold int) bool {
	if s.n == 0 {
		return false
	}
	r, g, b := s.Mean()
	t := float64(whiteThreshold)
	return r > t && g > t && b > t
}

// RGB returns the mean truncated to 8-bit components, or black when empty.
func (s *ColorSum) RGB() RGBColor {
	r, g, b := s.Mean()
	return RGBColor{R: uint8(r), G: uint8(g), B: uint8(b)}
}
