package vectorize

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDocument_SVG(t *testing.T) {
	doc := &Document{
		Width:  50,
		Height: 40,
		Paths: []VectorPath{
			{
				Subpaths:    []Ring{square(10, 10, 50, 40), square(20, 20, 30, 30)},
				FillColor:   "#000000",
				StrokeColor: "#000000",
				StrokeWidth: 0.5,
				FillRule:    EvenOdd,
			},
			{
				Subpaths:    []Ring{square(22.125, 22.5, 27.333333, 28)},
				FillColor:   "#ff0000",
				StrokeColor: "#ff0000",
				StrokeWidth: 2,
				FillRule:    NonZero,
			},
		},
	}

	want := `<svg xmlns="http://www.w3.org/2000/svg" width="50" height="40">
  <path d="M 10,10 L 50,10 L 50,40 L 10,40 Z M 20,20 L 30,20 L 30,30 L 20,30 Z" fill="#000000" stroke="#000000" stroke-width="0.5" fill-rule="evenodd" stroke-linejoin="round" stroke-linecap="round"/>
  <path d="M 22.13,22.5 L 27.33,22.5 L 27.33,28 L 22.13,28 Z" fill="#ff0000" stroke="#ff0000" stroke-width="2" fill-rule="nonzero" stroke-linejoin="round" stroke-linecap="round"/>
</svg>
`
	if got := string(doc.SVG()); got != want {
		t.Errorf("SVG mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDocument_SVGEmpty(t *testing.T) {
	doc := &Document{Width: 3, Height: 4}
	want := "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"3\" height=\"4\">\n</svg>\n"
	if got := string(doc.SVG()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{0.75, "0.75"},
		{1.0 / 3, "0.33"},
		{2.999, "3"},
		{-0.001, "0"},
		{-1.5, "-1.5"},
	}
	for _, tt := range tests {
		if got := string(appendNumber(nil, tt.in)); got != tt.want {
			t.Errorf("appendNumber(%v): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDocument_WriteSVGError(t *testing.T) {
	doc := &Document{Width: 1, Height: 1}
	if err := doc.WriteSVG(failingWriter{}); err == nil {
		t.Error("expected write error")
	}
}

func TestDocument_WriteSVGMatchesSVG(t *testing.T) {
	res := vectorizeNRGBA(t, ringWithDot(), plainOptions())

	var buf bytes.Buffer
	if err := res.Document.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), res.Document.SVG()) {
		t.Error("WriteSVG and SVG disagree")
	}
	if n := strings.Count(buf.String(), "<path "); n != 2 {
		t.Errorf("path elements: got %d, want 2", n)
	}
}
