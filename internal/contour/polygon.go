package contour

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Area returns the absolute area of the closed polygon through points,
// computed with the shoelace formula. Fewer than three points yield zero.
func Area(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum int64
	prev := points[len(points)-1]
	for _, p := range points {
		sum += int64(prev.X)*int64(p.Y) - int64(p.X)*int64(prev.Y)
		prev = p
	}
	return math.Abs(float64(sum)) / 2
}

// Fill rasterizes the area enclosed by n's boundary.
//
// The returned mask covers n.Bounds(); a pixel is 0xff when it lies inside
// the boundary and 0 otherwise. Since boundaries run along pixel edges every
// pixel is either fully inside or fully outside. The mask includes everything
// nested inside n, whether foreground or background.
func (n *Node) Fill() *image.Alpha {
	b := n.bounds
	if b.Empty() {
		return image.NewAlpha(b)
	}

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	p0 := n.points[0]
	z.MoveTo(float32(p0.X-b.Min.X), float32(p0.Y-b.Min.Y))
	for _, p := range n.points[1:] {
		z.LineTo(float32(p.X-b.Min.X), float32(p.Y-b.Min.Y))
	}
	z.ClosePath()

	// Draw into an origin-anchored image so the rasterizer can write
	// directly, then move the result to the node's position.
	dst := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	for i, a := range dst.Pix {
		if a >= 0x80 {
			dst.Pix[i] = 0xff
		} else {
			dst.Pix[i] = 0
		}
	}
	dst.Rect = b
	return dst
}
