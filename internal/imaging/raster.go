package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// RasterImage is an immutable 8-bit RGB raster stored row-major, three bytes
// per pixel.
//
// A RasterImage is created once from decoded input and never modified. Stages
// that need a different resolution or color treatment (upscaling, sharpening)
// produce a new RasterImage instead of editing an existing one.
type RasterImage struct {
	width  int
	height int
	pix    []uint8
}

// NewRasterImage creates a raster from row-major RGB bytes.
//
// The pixel slice is copied, so the caller may reuse its buffer afterwards.
// The slice length must be exactly width*height*3.
func NewRasterImage(width, height int, pix []uint8) (*RasterImage, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("raster %dx%d needs %d bytes, got %d", width, height, width*height*3, len(pix))
	}
	buf := make([]uint8, len(pix))
	copy(buf, pix)
	return &RasterImage{width: width, height: height, pix: buf}, nil
}

// FromImage converts any image.Image into a RasterImage.
//
// Pixels that are not fully opaque are composited over white, so transparent
// areas of a PNG read as background rather than as whatever color happens to
// be stored under a zero alpha. The result is re-based so that its top-left
// pixel is (0,0) regardless of the source bounds.
func FromImage(img image.Image) *RasterImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, width*height*3)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < width; x++ {
				r, g, b, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
				i := (y*width + x) * 3
				if a == 0xff {
					pix[i], pix[i+1], pix[i+2] = r, g, b
					continue
				}
				pix[i] = overWhite8(r, a)
				pix[i+1] = overWhite8(g, a)
				pix[i+2] = overWhite8(b, a)
			}
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				// RGBA() is alpha-premultiplied, so compositing over white
				// only needs the missing coverage added back.
				r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				i := (y*width + x) * 3
				pix[i] = uint8((r + 0xffff - a) >> 8)
				pix[i+1] = uint8((g + 0xffff - a) >> 8)
				pix[i+2] = uint8((b + 0xffff - a) >> 8)
			}
		}
	}

	return &RasterImage{width: width, height: height, pix: pix}
}

// overWhite8 composites a non-premultiplied 8-bit channel over white.
func overWhite8(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 255*(255-uint32(a)) + 127) / 255)
}

// Width returns the raster width in pixels.
func (r *RasterImage) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *RasterImage) Height() int { return r.height }

// Bounds returns the raster bounds, always anchored at (0,0).
func (r *RasterImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// RGBAt returns the color at (x, y). No bounds checking is performed; the
// caller must ensure the coordinates are inside Bounds().
func (r *RasterImage) RGBAt(x, y int) RGBColor {
	i := (y*r.width + x) * 3
	return RGBColor{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2]}
}

// NRGBA returns a fresh, fully opaque *image.NRGBA copy of the raster for
// handing to image libraries.
func (r *RasterImage) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(r.Bounds())
	for i, j := 0, 0; i < len(r.pix); i, j = i+3, j+4 {
		out.Pix[j] = r.pix[i]
		out.Pix[j+1] = r.pix[i+1]
		out.Pix[j+2] = r.pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}

// ColorModel, At and Bounds let a RasterImage be passed anywhere an
// image.Image is accepted.
func (r *RasterImage) ColorModel() color.Model { return color.RGBAModel }

// At implements image.Image.
func (r *RasterImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return color.RGBA{}
	}
	c := r.RGBAt(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
