package contour

import "image"

// Bitmap is a binary image. At must report false for coordinates outside
// the Width x Height area.
type Bitmap interface {
	Width() int
	Height() int
	At(x, y int) bool
}

// Point is a polygon vertex in pixel-corner coordinates: (0,0) is the
// top-left corner of the top-left pixel and (w,h) the bottom-right corner of
// the image.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node is one closed boundary in the contour hierarchy.
//
// A node either traces the outer boundary of a foreground component or the
// outer boundary of a background component enclosed by foreground (a ring's
// opening). Children are the boundaries directly nested inside, so levels
// alternate between the two kinds. Nodes are immutable once BuildForest
// returns.
type Node struct {
	points   []Point
	area     float64
	hole     bool
	parent   *Node
	children []*Node
	bounds   image.Rectangle
}

// Points returns the boundary vertices in traversal order. The returned
// slice must not be modified.
func (n *Node) Points() []Point { return n.points }

// Area returns the absolute polygon area of the boundary.
func (n *Node) Area() float64 { return n.area }

// IsHole reports whether the boundary encloses a background component
// rather than a foreground one.
func (n *Node) IsHole() bool { return n.hole }

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the directly nested nodes in discovery order. The
// returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Bounds returns the bounding box of the enclosed pixels.
func (n *Node) Bounds() image.Rectangle { return n.bounds }

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// BuildForest extracts the nesting hierarchy of boundaries between
// foreground and background in m.
//
// Each root is the outer boundary of a foreground component that touches the
// surrounding background. A foreground node's children are the background
// openings directly inside it, and an opening's children are the foreground
// components directly inside the opening. Roots and children are ordered by
// the raster position of the component's first pixel.
//
// Boundaries with fewer than three vertices are discarded together with
// everything nested inside them.
func BuildForest(m Bitmap) []*Node {
	if m.Width() <= 0 || m.Height() <= 0 {
		return nil
	}

	l := label(m)
	nodes := make([]*Node, len(l.components))
	dropped := make([]bool, len(l.components))
	var roots []*Node

	// Components are numbered in raster order of their first pixel, and an
	// enclosing component always starts above the components it encloses,
	// so parents are visited before their children.
	for _, c := range l.components[1:] {
		parentID := l.enclosing(c)
		if dropped[parentID] {
			dropped[c.id] = true
			continue
		}

		points, err := l.traceOuter(c)
		if err != nil {
			dropped[c.id] = true
			continue
		}

		n := &Node{
			points: points,
			area:   Area(points),
			hole:   !c.foreground,
			bounds: boundsOf(points),
		}
		nodes[c.id] = n

		if parentID == 0 {
			roots = append(roots, n)
			continue
		}
		parent := nodes[parentID]
		n.parent = parent
		parent.children = append(parent.children, n)
	}

	return roots
}

// Walk visits every node of the forest in depth-first pre-order. Returning
// false from fn skips the node's subtree.
func Walk(roots []*Node, fn func(*Node) bool) {
	stack := make([]*Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// Count returns the number of nodes in the forest.
func Count(roots []*Node) int {
	n := 0
	Walk(roots, func(*Node) bool {
		n++
		return true
	})
	return n
}

func boundsOf(points []Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: image.Pt(points[0].X, points[0].Y), Max: image.Pt(points[0].X, points[0].Y)}
	for _, p := range points[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}
