package contour

import (
	"image"
	"testing"
)

func filled(m *image.Alpha) int {
	n := 0
	for _, a := range m.Pix {
		switch a {
		case 0xff:
			n++
		case 0:
		default:
			panic("partial coverage in fill mask")
		}
	}
	return n
}

func TestArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   float64
	}{
		{"empty", nil, 0},
		{"two points", []Point{{0, 0}, {5, 5}}, 0},
		{"clockwise square", []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, 16},
		{"counter-clockwise square", []Point{{0, 0}, {0, 4}, {4, 4}, {4, 0}}, 16},
		{"triangle", []Point{{0, 0}, {10, 0}, {0, 5}}, 25},
		{"large", []Point{{0, 0}, {100000, 0}, {100000, 100000}, {0, 100000}}, 1e10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.points); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_FillRing(t *testing.T) {
	roots := BuildForest(rectBitmap{
		w: 30, h: 30,
		rects: []image.Rectangle{image.Rect(5, 5, 25, 25)},
		holes: []image.Rectangle{image.Rect(10, 10, 20, 20)},
	})
	ring := roots[0]

	m := ring.Fill()
	if m.Rect != image.Rect(5, 5, 25, 25) {
		t.Errorf("mask bounds: got %v", m.Rect)
	}
	// The exterior fill covers the opening as well.
	if got := filled(m); got != 400 {
		t.Errorf("ring fill: got %d pixels, want 400", got)
	}
	if m.AlphaAt(15, 15).A != 0xff || m.AlphaAt(4, 4).A != 0 {
		t.Error("ring fill has wrong pixels set")
	}

	hole := ring.Children()[0].Fill()
	if got := filled(hole); got != 100 {
		t.Errorf("hole fill: got %d pixels, want 100", got)
	}
}

func TestNode_FillMatchesArea(t *testing.T) {
	roots := BuildForest(grid{
		"..........",
		".###......",
		".#........",
		".#####....",
		"....##....",
		"....######",
		"..........",
	})
	if len(roots) != 1 {
		t.Fatalf("roots: got %d, want 1", len(roots))
	}
	n := roots[0]
	if got := filled(n.Fill()); float64(got) != n.Area() {
		t.Errorf("fill %d pixels, area %v", got, n.Area())
	}
	if n.Area() != 17 {
		t.Errorf("area: got %v, want 17", n.Area())
	}
}
