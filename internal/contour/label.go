package contour

// component is one connected region of the padded grid: either a foreground
// component (8-connected) or a background component (4-connected).
type component struct {
	id         int32
	foreground bool
	// first is the first pixel of the component in raster order, in padded
	// coordinates. Its top edge always lies on the component's outer boundary.
	firstX, firstY int
	pixels         int
}

// labeling assigns every pixel of a one-pixel-padded copy of the mask to a
// component. Padding guarantees that the whole image is surrounded by a
// single background component, which is always component 0.
type labeling struct {
	width, height int // padded dimensions
	labels        []int32
	fg            []bool
	components    []component
}

type gridPoint struct{ x, y int }

// label computes the components of m. Foreground uses 8-connectivity and
// background 4-connectivity, the dual pairing that makes every component
// boundary a closed curve and every nesting relation a tree.
func label(m Bitmap) *labeling {
	w, h := m.Width()+2, m.Height()+2
	l := &labeling{
		width:  w,
		height: h,
		labels: make([]int32, w*h),
		fg:     make([]bool, w*h),
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			l.fg[y*w+x] = m.At(x-1, y-1)
		}
	}
	for i := range l.labels {
		l.labels[i] = -1
	}

	var stack []gridPoint
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if l.labels[i] >= 0 {
				continue
			}
			c := component{
				id:         int32(len(l.components)),
				foreground: l.fg[i],
				firstX:     x,
				firstY:     y,
			}
			stack = l.floodFill(x, y, c.id, c.foreground, stack[:0])
			l.components = append(l.components, c)
		}
	}
	for i := range l.labels {
		l.components[l.labels[i]].pixels++
	}
	return l
}

// floodFill labels the component containing (startX, startY).
//
// Uses an explicit stack rather than recursion so large components cannot
// overflow the goroutine stack. Pixels are labeled as they are pushed, which
// bounds the stack by the component size. The stack slice is returned for
// reuse.
func (l *labeling) floodFill(startX, startY int, id int32, foreground bool, stack []gridPoint) []gridPoint {
	visit := func(x, y int) {
		if x < 0 || x >= l.width || y < 0 || y >= l.height {
			return
		}
		i := y*l.width + x
		if l.labels[i] >= 0 || l.fg[i] != foreground {
			return
		}
		l.labels[i] = id
		stack = append(stack, gridPoint{x, y})
	}

	visit(startX, startY)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if foreground {
			// 8-connected neighbors
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx != 0 || dy != 0 {
						visit(p.x+dx, p.y+dy)
					}
				}
			}
		} else {
			// 4-connected neighbors
			visit(p.x+1, p.y)
			visit(p.x-1, p.y)
			visit(p.x, p.y+1)
			visit(p.x, p.y-1)
		}
	}
	return stack
}

// enclosing returns the id of the component that directly surrounds c.
//
// The pixel immediately left of a component's first raster-order pixel cannot
// belong to the component itself (it would have been scanned first), and it
// lies on the component's outer boundary, so its label is the enclosing
// component. Component 0 encloses everything and has no parent.
func (l *labeling) enclosing(c component) int32 {
	if c.id == 0 {
		return -1
	}
	return l.labels[c.firstY*l.width+c.firstX-1]
}

// in reports whether padded pixel (x, y) belongs to component id.
func (l *labeling) in(x, y int, id int32) bool {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return false
	}
	return l.labels[y*l.width+x] == id
}
