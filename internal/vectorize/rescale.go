package vectorize

import (
	"math"

	"github.com/ironsheep/image-vectorize/internal/contour"
	"github.com/ironsheep/image-vectorize/internal/imaging"
)

// Vec is a point in output coordinates.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is a closed polygon in output coordinates. The closing edge from the
// last point back to the first is implied.
type Ring []Vec

// Area returns the absolute shoelace area of the ring.
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	var sum float64
	prev := r[len(r)-1]
	for _, p := range r {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return math.Abs(sum) / 2
}

// ScaledRegion is a Region whose geometry has been mapped to output
// coordinates. Color and Area are carried over unchanged, so ordering and
// paint decisions still reflect the working-resolution classification.
type ScaledRegion struct {
	Exterior Ring
	Holes    []Ring
	Color    imaging.RGBColor
	Area     float64

	seq int
}

// Rescale multiplies every vertex of the region's exterior and holes by
// scale. No pixels are resampled.
func Rescale(r Region, scale float64) ScaledRegion {
	out := ScaledRegion{
		Exterior: scaleRing(r.Exterior.Points(), scale),
		Color:    r.Color,
		Area:     r.Area,
		seq:      r.seq,
	}
	if len(r.Holes) > 0 {
		out.Holes = make([]Ring, len(r.Holes))
		for i, h := range r.Holes {
			out.Holes[i] = scaleRing(h.Points(), scale)
		}
	}
	return out
}

// CanvasSize maps working dimensions to output dimensions, rounding half
// away from zero.
func CanvasSize(width, height int, scale float64) (int, int) {
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}

func scaleRing(points []contour.Point, scale float64) Ring {
	ring := make(Ring, len(points))
	for i, p := range points {
		ring[i] = Vec{X: float64(p.X) * scale, Y: float64(p.Y) * scale}
	}
	return ring
}
