package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/bits"

	"github.com/disintegration/imaging"
)

// DefaultWhiteThreshold is the channel value a pixel must exceed on every
// channel to be treated as background.
const DefaultWhiteThreshold = 240

// ForegroundMask is a one-bit-per-pixel map of foreground pixels.
//
// A set bit marks a foreground pixel; a clear bit marks white background.
// Coordinates outside the mask read as background.
type ForegroundMask struct {
	width  int
	height int
	words  []uint64
}

// Separate classifies every pixel of img as background or foreground.
//
// A pixel is background iff each of its R, G and B values is strictly greater
// than whiteThreshold. There is no blur or morphology: the result is a pure
// per-pixel threshold of the input.
func Separate(img *RasterImage, whiteThreshold int) *ForegroundMask {
	m := &ForegroundMask{
		width:  img.width,
		height: img.height,
		words:  make([]uint64, (img.width*img.height+63)/64),
	}
	t := whiteThreshold
	for i, j := 0, 0; i < len(img.pix); i, j = i+3, j+1 {
		if int(img.pix[i]) > t && int(img.pix[i+1]) > t && int(img.pix[i+2]) > t {
			continue
		}
		m.words[j>>6] |= 1 << (uint(j) & 63)
	}
	return m
}

// Width returns the mask width in pixels.
func (m *ForegroundMask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *ForegroundMask) Height() int { return m.height }

// At reports whether (x, y) is a foreground pixel.
func (m *ForegroundMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	i := y*m.width + x
	return m.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Count returns the number of foreground pixels.
func (m *ForegroundMask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether the mask holds no foreground at all.
func (m *ForegroundMask) Empty() bool {
	for _, w := range m.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Image renders the mask as a grayscale image with foreground in black and
// background in white.
func (m *ForegroundMask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// Colorize renders the mask with foreground pixels painted fg on a white
// background.
func (m *ForegroundMask) Colorize(fg RGBColor) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			i := img.PixOffset(x, y)
			if m.At(x, y) {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = fg.R, fg.G, fg.B
			} else {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 0xff, 0xff, 0xff
			}
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// PNG encodes the mask preview as PNG bytes, with foreground painted fg.
func (m *ForegroundMask) PNG(fg RGBColor) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, m.Colorize(fg), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode mask image: %w", err)
	}
	return buf.Bytes(), nil
}
