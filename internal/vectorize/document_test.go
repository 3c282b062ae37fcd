package vectorize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/image-vectorize/internal/contour"
	"github.com/ironsheep/image-vectorize/internal/imaging"
)

func square(x0, y0, x1, y1 float64) Ring {
	return Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestAssemble_OrderByAreaThenDiscovery(t *testing.T) {
	regions := []ScaledRegion{
		{Exterior: square(0, 0, 2, 2), Area: 4, Color: imaging.RGBColor{R: 1}, seq: 0},
		{Exterior: square(0, 0, 5, 5), Area: 25, Color: imaging.RGBColor{R: 2}, seq: 1},
		{Exterior: square(3, 3, 5, 5), Area: 4, Color: imaging.RGBColor{R: 3}, seq: 2},
		{Exterior: square(0, 0, 3, 3), Area: 9, Color: imaging.RGBColor{R: 4}, seq: 3},
	}

	doc := Assemble(regions, 10, 10, 1)

	want := []string{"#020000", "#040000", "#010000", "#030000"}
	if len(doc.Paths) != len(want) {
		t.Fatalf("paths: got %d, want %d", len(doc.Paths), len(want))
	}
	for i, w := range want {
		if doc.Paths[i].FillColor != w {
			t.Errorf("path %d: got %s, want %s", i, doc.Paths[i].FillColor, w)
		}
	}
	if regions[0].seq != 0 || regions[1].Area != 25 {
		t.Error("Assemble must not reorder its input")
	}
}

func TestAssemble_Path(t *testing.T) {
	holeA := square(1, 1, 2, 2)
	holeB := square(3, 3, 4, 4)
	regions := []ScaledRegion{
		{
			Exterior: square(0, 0, 5, 5),
			Holes:    []Ring{holeA, holeB},
			Color:    imaging.RGBColor{R: 0xab, G: 0xcd, B: 0xef},
			Area:     25,
		},
		{Exterior: square(6, 6, 8, 8), Color: imaging.RGBColor{}, Area: 4, seq: 1},
	}

	doc := Assemble(regions, 10, 12, 0.5)

	if doc.Width != 10 || doc.Height != 12 {
		t.Errorf("canvas: got %dx%d, want 10x12", doc.Width, doc.Height)
	}

	p := doc.Paths[0]
	if p.FillColor != "#abcdef" || p.StrokeColor != "#abcdef" {
		t.Errorf("colors: got fill %s stroke %s, want #abcdef", p.FillColor, p.StrokeColor)
	}
	if p.StrokeWidth != 0.5 {
		t.Errorf("stroke width: got %v, want 0.5", p.StrokeWidth)
	}
	if p.FillRule != EvenOdd {
		t.Errorf("fill rule: got %s, want evenodd", p.FillRule)
	}
	if len(p.Subpaths) != 3 || p.Subpaths[1][0] != holeA[0] || p.Subpaths[2][0] != holeB[0] {
		t.Errorf("subpaths should be exterior then holes in order, got %v", p.Subpaths)
	}

	if doc.Paths[1].FillRule != NonZero {
		t.Errorf("fill rule without holes: got %s, want nonzero", doc.Paths[1].FillRule)
	}
}

func TestFillRule_JSON(t *testing.T) {
	data, err := json.Marshal(VectorPath{FillRule: EvenOdd})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"fill_rule":"evenodd"`) {
		t.Errorf("got %s", data)
	}
}

func TestRescale(t *testing.T) {
	img := newCanvas(40, 40)
	fillRect(img, 4, 8, 20, 24, black)
	roots, r := forestOf(img)
	regions := ClassifyForest(roots, 0, DefaultWhiteThreshold, r, 1)
	if len(regions) != 1 {
		t.Fatalf("regions: got %d, want 1", len(regions))
	}

	s := Rescale(regions[0], 0.25)

	want := square(1, 2, 5, 6)
	for i := range want {
		if s.Exterior[i] != want[i] {
			t.Errorf("vertex %d: got %v, want %v", i, s.Exterior[i], want[i])
		}
	}
	if s.Area != 256 {
		t.Errorf("area should be carried over unscaled: got %v, want 256", s.Area)
	}
	if got := s.Exterior.Area(); got != 16 {
		t.Errorf("scaled ring area: got %v, want 16", got)
	}
}

func TestRescale_Holes(t *testing.T) {
	roots, r := forestOf(ringImage(60, 60, 10, 50, 20, 40))
	regions := ClassifyForest(roots, DefaultMinArea, DefaultWhiteThreshold, r, 1)

	s := Rescale(regions[0], 0.5)
	if len(s.Holes) != 1 {
		t.Fatalf("holes: got %d, want 1", len(s.Holes))
	}
	if s.Holes[0][0] != (Vec{10, 10}) {
		t.Errorf("hole start: got %v, want {10 10}", s.Holes[0][0])
	}
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		w, h         int
		scale        float64
		wantW, wantH int
	}{
		{100, 50, 1, 100, 50},
		{400, 200, 0.25, 100, 50},
		{323, 90, 0.25, 81, 23},
		{0, 0, 0.25, 0, 0},
	}
	for _, tt := range tests {
		gotW, gotH := CanvasSize(tt.w, tt.h, tt.scale)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("CanvasSize(%d, %d, %v): got %dx%d, want %dx%d",
				tt.w, tt.h, tt.scale, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestRing_Area(t *testing.T) {
	if got := (Ring{{0, 0}, {1, 1}}).Area(); got != 0 {
		t.Errorf("two-point ring: got %v, want 0", got)
	}
	// Counter-clockwise triangle.
	if got := (Ring{{0, 0}, {0, 3}, {4, 0}}).Area(); got != 6 {
		t.Errorf("triangle: got %v, want 6", got)
	}
	if got := contour.Area([]contour.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}); got != 6 {
		t.Errorf("contour triangle: got %v, want 6", got)
	}
}
