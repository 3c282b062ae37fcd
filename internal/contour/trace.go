package contour

import (
	"errors"
	"fmt"
)

// ErrDegenerateContour marks a boundary with fewer than three vertices.
// BuildForest skips such boundaries; the error never leaves the package
// through BuildForest.
var ErrDegenerateContour = errors.New("degenerate contour")

// direction is a unit step along the pixel grid lines.
type direction int

const (
	east direction = iota
	south
	west
	north
)

var steps = [4]gridPoint{
	east:  {1, 0},
	south: {0, 1},
	west:  {-1, 0},
	north: {0, -1},
}

func (d direction) right() direction { return (d + 1) % 4 }
func (d direction) left() direction  { return (d + 3) % 4 }

// ahead returns the two pixels in front of vertex (vx, vy) when heading d,
// as seen from the direction of travel. Vertex (vx, vy) is the top-left
// corner of pixel (vx, vy).
func ahead(vx, vy int, d direction) (left, right gridPoint) {
	switch d {
	case east:
		return gridPoint{vx, vy - 1}, gridPoint{vx, vy}
	case south:
		return gridPoint{vx, vy}, gridPoint{vx - 1, vy}
	case west:
		return gridPoint{vx - 1, vy}, gridPoint{vx - 1, vy - 1}
	default:
		return gridPoint{vx - 1, vy - 1}, gridPoint{vx, vy - 1}
	}
}

// traceOuter walks the outer boundary of component c along pixel edges and
// returns its corner vertices in unpadded image coordinates.
//
// The walk starts at the top-left corner of c's first pixel heading east and
// keeps the component on its right, so boundaries come out clockwise on
// screen. Where two pixels of c touch only at a corner, foreground components
// (8-connected) stay joined and background components (4-connected) are
// split, matching the connectivity used by label. Only corners are emitted;
// straight runs collapse to their endpoints. Boundaries with fewer than three
// corners are reported as ErrDegenerateContour.
func (l *labeling) traceOuter(c component) ([]Point, error) {
	in := func(p gridPoint) bool { return l.in(p.x, p.y, c.id) }

	start := gridPoint{c.firstX, c.firstY}
	v, d := start, east
	points := []Point{{X: start.x - 1, Y: start.y - 1}}

	for {
		v = gridPoint{v.x + steps[d].x, v.y + steps[d].y}

		aheadLeft, aheadRight := ahead(v.x, v.y, d)
		inL, inR := in(aheadLeft), in(aheadRight)

		next := d
		switch {
		case inL && inR:
			next = d.left()
		case inL && !inR:
			// Diagonal contact between pixels of c.
			if c.foreground {
				next = d.left()
			} else {
				next = d.right()
			}
		case !inL && inR:
			// straight on
		default:
			next = d.right()
		}

		if v == start && next == east {
			break
		}
		if next != d {
			points = append(points, Point{X: v.x - 1, Y: v.y - 1})
		}
		d = next
	}

	if len(points) < 3 {
		return nil, fmt.Errorf("%w: component %d has %d vertices", ErrDegenerateContour, c.id, len(points))
	}
	return points, nil
}
