package vectorize

import (
	"image"
	"math"

	"github.com/ironsheep/image-vectorize/internal/contour"
	"github.com/ironsheep/image-vectorize/internal/imaging"
)

// Region is a flat-colored area: an exterior boundary minus the nested
// boundaries that were classified as holes.
//
// Holes only ever contains direct children of Exterior whose enclosed content
// is background. Children that enclose colored content become Regions of
// their own and never appear in Holes.
type Region struct {
	// Exterior is the outer boundary of the region.
	Exterior *contour.Node

	// Holes are the openings subtracted from Exterior, in discovery order.
	Holes []*contour.Node

	// Color is the mean color of the pixels inside Exterior and outside Holes.
	Color imaging.RGBColor

	// Area is the polygon area of Exterior in working-resolution pixels.
	Area float64

	// seq is the discovery position used to break area ties.
	seq int
}

// childKind tags how a nested boundary was classified.
type childKind int

const (
	// childTooSmall boundaries are below the minimum area and ignored.
	childTooSmall childKind = iota

	// childHole boundaries enclose background and are subtracted.
	childHole

	// childNested boundaries enclose colored content and become regions.
	childNested
)

// childOutcome is the classification of one child boundary.
type childOutcome struct {
	kind childKind
	node *contour.Node
	// fill is the child's interior mask, set for holes.
	fill *image.Alpha
}

// Classify turns the subtree rooted at node into regions.
//
// For each boundary at least minArea in size, every child boundary is tested
// by averaging the original image inside it. A child whose mean exceeds
// whiteThreshold on every channel is a hole: it is subtracted from the
// parent's fill and its own children are classified in turn, since an opening
// may contain colored islands. Any other child is an independent nested
// region and is classified like a root. A boundary below minArea produces
// nothing, and nothing nested inside it is considered either.
//
// minArea is measured in input-image pixels: scale is the factor that maps the
// working coordinates of node and img back to the input image, so a boundary
// of working area a counts as a*scale*scale. A scale of 1 means the two
// resolutions coincide; non-positive scales are treated as 1.
//
// Regions are returned in discovery order, parents before their nested
// regions. The traversal uses an explicit stack, so depth is limited only by
// the hierarchy itself.
func Classify(node *contour.Node, minArea float64, whiteThreshold int, img *imaging.RasterImage, scale float64) []Region {
	return ClassifyForest([]*contour.Node{node}, minArea, whiteThreshold, img, scale)
}

// ClassifyForest runs Classify over every root and concatenates the results,
// numbering regions in a single discovery sequence.
func ClassifyForest(roots []*contour.Node, minArea float64, whiteThreshold int, img *imaging.RasterImage, scale float64) []Region {
	c := &classifier{
		minArea:   workingArea(minArea, scale),
		threshold: whiteThreshold,
		img:       img,
	}
	return c.run(roots)
}

// workingArea converts an input-image area to working pixels. Boundary areas
// are whole pixel counts, so a result within rounding noise of an integer is
// snapped to it.
func workingArea(minArea, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	a := minArea / (scale * scale)
	if r := math.Round(a); math.Abs(a-r) < 1e-6 {
		return r
	}
	return a
}

type classifier struct {
	// minArea is in working pixels.
	minArea   float64
	threshold int
	img       *imaging.RasterImage
	seq       int
}

func (c *classifier) run(roots []*contour.Node) []Region {
	var regions []Region

	stack := make([]*contour.Node, 0, len(roots))
	stack = pushReversed(stack, roots)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		region, next, ok := c.extract(n)
		if !ok {
			continue
		}
		regions = append(regions, region)
		stack = pushReversed(stack, next)
	}

	return regions
}

// extract builds the region for n and returns the boundaries that must be
// classified next: nested regions and the children of holes.
func (c *classifier) extract(n *contour.Node) (Region, []*contour.Node, bool) {
	if n.Area() < c.minArea {
		return Region{}, nil, false
	}

	interior := n.Fill()
	var holes, next []*contour.Node

	for _, child := range n.Children() {
		o := c.classifyChild(child)
		switch o.kind {
		case childTooSmall:
		case childHole:
			subtract(interior, o.fill)
			holes = append(holes, o.node)
			next = append(next, o.node.Children()...)
		case childNested:
			next = append(next, o.node)
		}
	}

	sum := meanUnder(c.img, interior)
	region := Region{
		Exterior: n,
		Holes:    holes,
		Color:    sum.RGB(),
		Area:     n.Area(),
		seq:      c.seq,
	}
	c.seq++
	return region, next, true
}

func (c *classifier) classifyChild(child *contour.Node) childOutcome {
	if child.Area() < c.minArea {
		return childOutcome{kind: childTooSmall, node: child}
	}
	fill := child.Fill()
	sum := meanUnder(c.img, fill)
	if sum.AboveThreshold(c.threshold) {
		return childOutcome{kind: childHole, node: child, fill: fill}
	}
	return childOutcome{kind: childNested, node: child}
}

func pushReversed(stack, nodes []*contour.Node) []*contour.Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}
	return stack
}

// meanUnder accumulates the colors of img under the set pixels of m.
func meanUnder(img *imaging.RasterImage, m *image.Alpha) imaging.ColorSum {
	var sum imaging.ColorSum
	r := m.Rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[m.PixOffset(r.Min.X, y):]
		for x := 0; x < r.Dx(); x++ {
			if row[x] != 0 {
				sum.Add(img.RGBAt(r.Min.X+x, y))
			}
		}
	}
	return sum
}

// subtract clears every pixel of dst that is set in hole.
func subtract(dst, hole *image.Alpha) {
	r := dst.Rect.Intersect(hole.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := dst.Pix[dst.PixOffset(r.Min.X, y):]
		h := hole.Pix[hole.PixOffset(r.Min.X, y):]
		for x := 0; x < r.Dx(); x++ {
			if h[x] != 0 {
				d[x] = 0
			}
		}
	}
}
